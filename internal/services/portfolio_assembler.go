package services

import (
	"context"
	"mime/multipart"
	"sort"

	"estate_backend/internal/formdata"
	"estate_backend/internal/logger"
	"estate_backend/internal/media"

	"golang.org/x/sync/errgroup"
)

// AssembleInput carries the raw multipart pieces of one create/update request.
type AssembleInput struct {
	// Fields is the flat text-field mapping of the request.
	Fields map[string][]string
	// Files is the parsed file mapping (multipart.Form.File).
	Files map[string][]*multipart.FileHeader
	// Existing holds retained image URLs per index on update; nil on create.
	Existing map[int][]string
	// Folder is the storage folder for newly hosted images.
	Folder string
}

// AssembledEntry is one complete portfolio entry ready for persistence.
type AssembledEntry struct {
	Index       int      `json:"index"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	CompletedOn string   `json:"completedOn"`
	Location    string   `json:"location"`
	Images      []string `json:"images"`
}

// RejectedEntry records why an index was dropped, so callers can surface a
// warning instead of silently losing the submission.
type RejectedEntry struct {
	Index   int      `json:"index"`
	Reasons []string `json:"reasons"`
}

// AssembleResult is the outcome of one reconstruction pass.
type AssembleResult struct {
	Accepted []AssembledEntry `json:"accepted"`
	Rejected []RejectedEntry  `json:"rejected"`
}

// AssemblePortfolio rebuilds structured portfolio entries from bracket-encoded
// form fields and file parts. All file uploads run concurrently; a failed
// upload contributes no URL and never aborts siblings. Entries missing a
// scalar field or ending with zero images are excluded and reported in
// Rejected. Output is ordered by ascending numeric index.
func AssemblePortfolio(ctx context.Context, uploader media.Uploader, in AssembleInput) (*AssembleResult, error) {
	entries := formdata.ParseIndexedFields(in.Fields)
	groups := formdata.GroupFilesByIndex(in.Files)

	// Files (or retained URLs) can arrive for an index that has no text
	// fields; fabricate an empty record so the merge is uniform. Such
	// records fall out in the completeness filter unless text exists.
	indexSet := make(map[int]struct{})
	for idx := range entries {
		indexSet[idx] = struct{}{}
	}
	for idx := range groups {
		indexSet[idx] = struct{}{}
		if _, ok := entries[idx]; !ok {
			entries[idx] = &formdata.EntryFields{}
		}
	}
	for idx := range in.Existing {
		indexSet[idx] = struct{}{}
		if _, ok := entries[idx]; !ok {
			entries[idx] = &formdata.EntryFields{}
		}
	}

	// Fire all uploads at once. Result slots are pre-sized per index so the
	// image order within an entry matches the request order regardless of
	// which upload finishes first.
	uploaded := make(map[int][]string, len(groups))
	g, gctx := errgroup.WithContext(ctx)

	for idx, files := range groups {
		uploaded[idx] = make([]string, len(files))
		for i, fh := range files {
			idx, i, fh := idx, i, fh
			g.Go(func() error {
				url, err := media.UploadFromFileHeader(gctx, uploader, fh, in.Folder)
				if err != nil {
					// Recovered locally: this file contributes no URL.
					logger.CtxWithError(gctx, "portfolio image upload failed", err,
						"index", idx, "file", fh.Filename)
					return nil
				}
				uploaded[idx][i] = url
				return nil
			})
		}
	}

	// All uploads must settle before any entry is assembled.
	if err := g.Wait(); err != nil {
		return nil, err
	}

	indices := make([]int, 0, len(indexSet))
	for idx := range indexSet {
		indices = append(indices, idx)
	}
	// Ascending numeric index keeps the output deterministic.
	sort.Ints(indices)

	result := &AssembleResult{}

	for _, idx := range indices {
		entry := entries[idx]

		// Retained URLs first, newly hosted URLs appended after.
		images := append([]string{}, in.Existing[idx]...)
		for _, url := range uploaded[idx] {
			if url != "" {
				images = append(images, url)
			}
		}

		reasons := incompleteReasons(entry, images)
		if len(reasons) > 0 {
			logger.CtxWarn(ctx, "dropping incomplete portfolio entry",
				"index", idx, "reasons", reasons)
			result.Rejected = append(result.Rejected, RejectedEntry{Index: idx, Reasons: reasons})
			continue
		}

		result.Accepted = append(result.Accepted, AssembledEntry{
			Index:       idx,
			Title:       entry.Title,
			Description: entry.Description,
			CompletedOn: entry.CompletedOn,
			Location:    entry.Location,
			Images:      images,
		})
	}

	return result, nil
}

func incompleteReasons(entry *formdata.EntryFields, images []string) []string {
	var reasons []string
	if entry.Title == "" {
		reasons = append(reasons, "missing title")
	}
	if entry.Description == "" {
		reasons = append(reasons, "missing description")
	}
	if entry.CompletedOn == "" {
		reasons = append(reasons, "missing completedOn")
	}
	if entry.Location == "" {
		reasons = append(reasons, "missing location")
	}
	if len(images) == 0 {
		reasons = append(reasons, "no images")
	}
	return reasons
}
