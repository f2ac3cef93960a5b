package main

import (
	"encoding/json"
	"fmt"
	"html"
	"io"

	"github.com/fatih/color"

	"github.com/five82/lamplight/datain"
	"github.com/five82/lamplight/record"
	"github.com/five82/lamplight/recordset"
)

var (
	okColor    = color.New(color.FgGreen, color.Bold)
	errColor   = color.New(color.FgRed, color.Bold)
	idColor    = color.New(color.FgCyan)
	mutedColor = color.New(color.Faint)
)

func printRecordSet(w, errw io.Writer, rs *recordset.RecordSet, templateFor func(string) string) {
	if rs.HasErrors() {
		errColor.Fprintf(errw, "error %d: %s\n", rs.ErrorCode(), rs.ErrorMessage())
		return
	}
	for id, rec := range rs.All() {
		idColor.Fprintf(w, "%6d", id)
		fmt.Fprintf(w, "  %s\n", html.UnescapeString(rec.Render(templateFor(rec.Type()))))
	}
	mutedColor.Fprintf(w, "%d record%s\n", rs.Len(), rs.Plural())
}

func printCollection(w, errw io.Writer, c *datain.ResponseCollection) {
	if c.Len() == 0 {
		okColor.Fprintln(w, "ok")
		return
	}
	for _, e := range c.All() {
		if e.Success() {
			okColor.Fprint(w, "saved")
			fmt.Fprintf(w, " id %d\n", e.ID())
			continue
		}
		errColor.Fprint(errw, "failed")
		if e.ID() > 0 {
			fmt.Fprintf(errw, " id %d", e.ID())
		}
		fmt.Fprintf(errw, ": error %d: %s\n", e.ErrorCode(), e.ErrorMessage())
	}
}

type errorJSON struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type recordJSON struct {
	Type   string          `json:"type"`
	ID     int             `json:"id"`
	Fields *record.Fields `json:"fields"`
}

type recordSetJSON struct {
	Status  int          `json:"status"`
	Error   *errorJSON   `json:"error,omitempty"`
	Records []recordJSON `json:"records"`
}

type savedJSON struct {
	ID      int        `json:"id"`
	Success bool       `json:"success"`
	Error   *errorJSON `json:"error,omitempty"`
}

type collectionJSON struct {
	Status  int         `json:"status"`
	Success bool        `json:"success"`
	Results []savedJSON `json:"results"`
}

func writeRecordSetJSON(w io.Writer, rs *recordset.RecordSet) error {
	out := recordSetJSON{Status: rs.HTTPStatus(), Records: []recordJSON{}}
	if rs.HasErrors() {
		out.Error = &errorJSON{Code: rs.ErrorCode(), Message: rs.ErrorMessage()}
	}
	for id, rec := range rs.All() {
		fields := rec.Fields()
		if fields == nil {
			fields = record.NewFields()
		}
		out.Records = append(out.Records, recordJSON{Type: rec.Type(), ID: id, Fields: fields})
	}
	return writeJSON(w, out)
}

func writeCollectionJSON(w io.Writer, c *datain.ResponseCollection) error {
	out := collectionJSON{Status: c.StatusCode(), Success: c.Success(), Results: []savedJSON{}}
	for _, e := range c.All() {
		s := savedJSON{ID: e.ID(), Success: e.Success()}
		if !e.Success() {
			s.Error = &errorJSON{Code: e.ErrorCode(), Message: e.ErrorMessage()}
		}
		out.Results = append(out.Results, s)
	}
	return writeJSON(w, out)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
