package rules

import (
	"context"
	"sort"

	"devopshq/artifactory-cleanup/pkg/artifactory"
)

// KeepLatestNFiles protects the most recently deployed N files in every
// folder by removing them from the deletion candidates. Folders are never
// candidates for this rule and pass through untouched.
type KeepLatestNFiles struct {
	count int
}

// Name implements Rule.
func (r *KeepLatestNFiles) Name() string { return "keep_latest_n_files" }

// Filter implements Rule.
func (r *KeepLatestNFiles) Filter(_ context.Context, items []artifactory.Item) ([]artifactory.Item, error) {
	type key struct{ repo, path string }

	byFolder := make(map[key][]artifactory.Item)
	var folders []artifactory.Item
	for _, item := range items {
		if item.Folder {
			folders = append(folders, item)
			continue
		}
		k := key{item.Repo, item.Path}
		byFolder[k] = append(byFolder[k], item)
	}

	var out []artifactory.Item
	for _, files := range byFolder {
		sort.Slice(files, func(i, j int) bool {
			return files[i].Created.After(files[j].Created)
		})
		if len(files) > r.count {
			out = append(out, files[r.count:]...)
		}
	}
	out = append(out, folders...)

	// Group iteration above is unordered; restore listing order so the
	// surviving candidates stay deterministic.
	index := make(map[string]int, len(items))
	for i, item := range items {
		index[item.FullPath()] = i
	}
	sort.Slice(out, func(i, j int) bool {
		return index[out[i].FullPath()] < index[out[j].FullPath()]
	})

	return out, nil
}

func keepLatestNFilesDefinition() *Definition {
	return &Definition{
		Name: "keep_latest_n_files",
		New: func(p Params) (Rule, error) {
			if err := p.CheckKeys("count"); err != nil {
				return nil, err
			}
			count, err := p.PositiveInt("count")
			if err != nil {
				return nil, err
			}
			return &KeepLatestNFiles{count: count}, nil
		},
	}
}
