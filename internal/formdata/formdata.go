// Package formdata reconstructs structured records from the bracket-encoded
// multipart convention used by the mobile client: text fields arrive as
// portfolio[<idx>][<field>] and image parts as portfolio[<idx>][images].
// Keys are normalized into integer-indexed maps at this boundary so the rest
// of the pipeline never deals with stringly-typed keys.
package formdata

import (
	"mime/multipart"
	"regexp"
	"strconv"
)

var (
	fieldKeyRe = regexp.MustCompile(`^portfolio\[(\d+)\]\[(title|description|completedOn|location)\]$`)
	imageKeyRe = regexp.MustCompile(`^portfolio\[(\d+)\]\[images\]$`)
	// existingImages[<idx>] or existingImages[<idx>][] — retained URLs on update
	existingKeyRe = regexp.MustCompile(`^existingImages\[(\d+)\](\[\])?$`)
)

// EntryFields holds the scalar fields of one portfolio entry as submitted.
// Values are passed through unvalidated; empty strings stay empty.
type EntryFields struct {
	Title       string
	Description string
	CompletedOn string
	Location    string
}

// ParseIndexedFields extracts portfolio[<idx>][<field>] keys from a flat
// form-value mapping. Keys that do not match the convention are ignored.
// Records are created only for indices that appear in at least one matching
// key. Duplicate keys for the same (index, field) resolve last-value-wins.
func ParseIndexedFields(values map[string][]string) map[int]*EntryFields {
	entries := make(map[int]*EntryFields)

	for key, vals := range values {
		m := fieldKeyRe.FindStringSubmatch(key)
		if m == nil || len(vals) == 0 {
			continue
		}

		idx, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}

		entry, ok := entries[idx]
		if !ok {
			entry = &EntryFields{}
			entries[idx] = entry
		}

		// Repeated form keys keep request order; the last submitted wins.
		value := vals[len(vals)-1]

		switch m[2] {
		case "title":
			entry.Title = value
		case "description":
			entry.Description = value
		case "completedOn":
			entry.CompletedOn = value
		case "location":
			entry.Location = value
		}
	}

	return entries
}

// GroupFilesByIndex groups uploaded file parts by the index encoded in their
// field name. Files whose field name does not match portfolio[<idx>][images]
// belong to other form fields and are skipped. Relative order within a group
// follows the order the parts appeared in the request, which determines the
// final image order of the entry.
func GroupFilesByIndex(forms map[string][]*multipart.FileHeader) map[int][]*multipart.FileHeader {
	groups := make(map[int][]*multipart.FileHeader)

	for field, files := range forms {
		m := imageKeyRe.FindStringSubmatch(field)
		if m == nil {
			continue
		}

		idx, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}

		groups[idx] = append(groups[idx], files...)
	}

	return groups
}

// ParseExistingImages extracts retained image URLs submitted on update as
// existingImages[<idx>] (single or repeated) or existingImages[<idx>][].
// Order within an index follows submission order.
func ParseExistingImages(values map[string][]string) map[int][]string {
	retained := make(map[int][]string)

	for key, vals := range values {
		m := existingKeyRe.FindStringSubmatch(key)
		if m == nil {
			continue
		}

		idx, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}

		for _, v := range vals {
			if v != "" {
				retained[idx] = append(retained[idx], v)
			}
		}
	}

	return retained
}
