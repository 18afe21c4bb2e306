package rules

import (
	"context"
	"path"
	"time"

	"devopshq/artifactory-cleanup/pkg/artifactory"
)

// DeleteOlderThan selects artifacts deployed more than a given number of
// days ago.
type DeleteOlderThan struct {
	days int
	now  func() time.Time
}

// Name implements Rule.
func (r *DeleteOlderThan) Name() string { return "delete_older_than" }

// Filter implements Rule.
func (r *DeleteOlderThan) Filter(_ context.Context, items []artifactory.Item) ([]artifactory.Item, error) {
	cutoff := r.now().AddDate(0, 0, -r.days)

	var out []artifactory.Item
	for _, item := range items {
		if item.Folder {
			continue
		}
		if item.Created.Before(cutoff) {
			out = append(out, item)
		}
	}
	return out, nil
}

// DeleteNotUsedSince selects artifacts that have not been downloaded for a
// given number of days. Artifacts that were never downloaded qualify when
// their deployment date is older than the cutoff.
type DeleteNotUsedSince struct {
	days int
	now  func() time.Time
}

// Name implements Rule.
func (r *DeleteNotUsedSince) Name() string { return "delete_not_used_since" }

// Filter implements Rule.
func (r *DeleteNotUsedSince) Filter(_ context.Context, items []artifactory.Item) ([]artifactory.Item, error) {
	cutoff := r.now().AddDate(0, 0, -r.days)

	var out []artifactory.Item
	for _, item := range items {
		if item.Folder {
			continue
		}
		last := item.LastDownloaded
		if last.IsZero() {
			last = item.Created
		}
		if last.Before(cutoff) {
			out = append(out, item)
		}
	}
	return out, nil
}

// DeleteWithoutDownloads selects artifacts that have never been downloaded.
type DeleteWithoutDownloads struct{}

// Name implements Rule.
func (r *DeleteWithoutDownloads) Name() string { return "delete_without_downloads" }

// Filter implements Rule.
func (r *DeleteWithoutDownloads) Filter(_ context.Context, items []artifactory.Item) ([]artifactory.Item, error) {
	var out []artifactory.Item
	for _, item := range items {
		if item.Folder {
			continue
		}
		if item.DownloadCount == 0 && item.LastDownloaded.IsZero() {
			out = append(out, item)
		}
	}
	return out, nil
}

// DeleteEmptyFolders selects folders that contain no files anywhere beneath
// them in the candidate listing.
type DeleteEmptyFolders struct{}

// Name implements Rule.
func (r *DeleteEmptyFolders) Name() string { return "delete_empty_folders" }

// Filter implements Rule.
func (r *DeleteEmptyFolders) Filter(_ context.Context, items []artifactory.Item) ([]artifactory.Item, error) {
	// Every directory that has a file somewhere below it is occupied,
	// including all of its ancestors.
	occupied := make(map[string]bool)
	for _, item := range items {
		if item.Folder {
			continue
		}
		dir := path.Join(item.Repo, item.Path)
		for dir != "." && dir != "/" && dir != "" {
			occupied[dir] = true
			dir = path.Dir(dir)
		}
	}

	var out []artifactory.Item
	for _, item := range items {
		if !item.Folder {
			continue
		}
		if !occupied[item.FullPath()] {
			out = append(out, item)
		}
	}
	return out, nil
}

func deleteOlderThanDefinition() *Definition {
	return &Definition{
		Name: "delete_older_than",
		New: func(p Params) (Rule, error) {
			if err := p.CheckKeys("days"); err != nil {
				return nil, err
			}
			days, err := p.PositiveInt("days")
			if err != nil {
				return nil, err
			}
			return &DeleteOlderThan{days: days, now: time.Now}, nil
		},
	}
}

func deleteNotUsedSinceDefinition() *Definition {
	return &Definition{
		Name: "delete_not_used_since",
		New: func(p Params) (Rule, error) {
			if err := p.CheckKeys("days"); err != nil {
				return nil, err
			}
			days, err := p.PositiveInt("days")
			if err != nil {
				return nil, err
			}
			return &DeleteNotUsedSince{days: days, now: time.Now}, nil
		},
	}
}

func deleteWithoutDownloadsDefinition() *Definition {
	return &Definition{
		Name: "delete_without_downloads",
		New: func(p Params) (Rule, error) {
			if err := p.CheckKeys(); err != nil {
				return nil, err
			}
			return &DeleteWithoutDownloads{}, nil
		},
	}
}

func deleteEmptyFoldersDefinition() *Definition {
	return &Definition{
		Name: "delete_empty_folders",
		New: func(p Params) (Rule, error) {
			if err := p.CheckKeys(); err != nil {
				return nil, err
			}
			return &DeleteEmptyFolders{}, nil
		},
	}
}
