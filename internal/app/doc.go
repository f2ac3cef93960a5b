// Package app is the composition root of the lamplight CLI.
//
// Setup loads the config file, the .env file beside it and the process
// environment, builds the zap logger and returns an Env holding a ready
// client.Client. Commands call the client directly; Browse adds a background
// Poller that feeds a state.Store, which the terminal UI reads on its own
// tick:
//
//	Setup()
//	  ├─> config.Load()    file, .env, environment
//	  ├─> prefs.Load()     theme and render templates
//	  ├─> logging.New()    zap console logger
//	  └─> client.New()
//
//	Browse()
//	  ├─> StartPoller()    client.Fetch ─> store.Update
//	  └─> ui.Run()         store.Snapshot on every tick (blocks)
//
// Poll failures are logged and kept in the store for the status line; the
// poller keeps going until the context is cancelled. There is no retry or
// backoff beyond the fixed cadence.
package app
