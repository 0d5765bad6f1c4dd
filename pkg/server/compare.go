package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"

	"srs-hq/rulediff/pkg/comparator"
	"srs-hq/rulediff/pkg/lookup"
	"srs-hq/rulediff/pkg/report"
	"srs-hq/rulediff/pkg/source"
	"srs-hq/rulediff/pkg/telemetry/logging"
)

// compareRequest is the JSON /compare body.
type compareRequest struct {
	OldXML         string             `json:"oldXml"`
	NewXML         string             `json:"newXml"`
	OldName        string             `json:"oldName"`
	NewName        string             `json:"newName"`
	DBCreds        lookup.Credentials `json:"dbCreds"`
	SkipEnrichment bool               `json:"skipEnrichment"`
}

type compareHandler struct {
	comparator *comparator.Service
	maxMemory  int64
}

func (h *compareHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !allowPost(w, r) {
		return
	}

	format := r.URL.Query().Get("format")
	var partition report.Partition
	switch format {
	case "", "json":
	case "csv":
		p, err := report.ParsePartition(r.URL.Query().Get("partition"))
		if err != nil {
			writeStatus(w, http.StatusBadRequest, StatusMissingParameters, err)
			return
		}
		partition = p
	default:
		writeStatus(w, http.StatusBadRequest, StatusMissingParameters, fmt.Errorf("unknown format %q", format))
		return
	}

	in, err := h.decode(r)
	if err != nil {
		if tooLarge(err) {
			writeStatus(w, http.StatusRequestEntityTooLarge, StatusBodyTooLarge, nil)
			return
		}
		writeStatus(w, http.StatusBadRequest, StatusMissingParameters, err)
		return
	}

	rep, err := h.comparator.Compare(r.Context(), in)
	if err != nil {
		if comparator.IsInputError(err) {
			writeStatus(w, http.StatusBadRequest, StatusMissingParameters, err)
			return
		}
		writeStatus(w, http.StatusInternalServerError, StatusComparisonError, err)
		return
	}

	if format == "csv" {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
			"filename": partition.FileName(),
		}))
		if err := report.WriteCSV(w, rep, partition); err != nil {
			logging.FromContext(r.Context()).Error("failed to write csv", "error", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// decode reads a JSON body or a multipart upload.
func (h *compareHandler) decode(r *http.Request) (comparator.Input, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		return h.decodeMultipart(r)
	}

	var req compareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return comparator.Input{}, fmt.Errorf("invalid JSON body: %w", err)
	}
	return comparator.Input{
		Old:            source.Document{Name: nameOr(req.OldName, "old"), Data: []byte(req.OldXML)},
		New:            source.Document{Name: nameOr(req.NewName, "new"), Data: []byte(req.NewXML)},
		Credentials:    req.DBCreds,
		SkipEnrichment: req.SkipEnrichment,
	}, nil
}

func (h *compareHandler) decodeMultipart(r *http.Request) (comparator.Input, error) {
	maxMemory := h.maxMemory
	if maxMemory <= 0 {
		maxMemory = 32 << 20
	}
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		return comparator.Input{}, err
	}
	defer r.MultipartForm.RemoveAll()

	oldDoc, err := formDocument(r, "old")
	if err != nil {
		return comparator.Input{}, err
	}
	newDoc, err := formDocument(r, "new")
	if err != nil {
		return comparator.Input{}, err
	}

	skip, _ := strconv.ParseBool(r.FormValue("skipEnrichment"))
	return comparator.Input{
		Old: oldDoc,
		New: newDoc,
		Credentials: lookup.Credentials{
			Username:    r.FormValue("username"),
			Password:    r.FormValue("password"),
			Host:        r.FormValue("host"),
			Port:        r.FormValue("port"),
			ServiceName: r.FormValue("serviceName"),
		},
		SkipEnrichment: skip,
	}, nil
}

// formDocument reads an uploaded file. A missing file yields an empty
// document so the comparator reports which side is missing.
func formDocument(r *http.Request, field string) (source.Document, error) {
	f, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return source.Document{Name: field}, nil
	}
	if err != nil {
		return source.Document{}, err
	}
	defer func(f multipart.File) { _ = f.Close() }(f)

	return source.Read(header.Filename, f)
}

func nameOr(name, fallback string) string {
	if name != "" {
		return name
	}
	return fallback
}
