package artifactory

import (
	"context"
	"path"
	"time"
)

// Item describes a single artifact stored in a repository.
// It carries the metadata the cleanup rules filter on.
type Item struct {
	// Repo is the repository key the artifact lives in.
	Repo string

	// Path is the folder path inside the repository ("." for the root).
	Path string

	// Name is the artifact file name.
	Name string

	// Size is the artifact size in bytes.
	Size int64

	// Folder reports whether the item is a folder rather than a file.
	Folder bool

	// Created is when the artifact was deployed.
	Created time.Time

	// LastModified is when the artifact content last changed.
	LastModified time.Time

	// LastDownloaded is when the artifact was last downloaded.
	// Zero means the artifact has never been downloaded.
	LastDownloaded time.Time

	// DownloadCount is the total number of downloads.
	DownloadCount int64

	// Properties holds the artifact's user properties.
	Properties map[string]string
}

// FullPath returns the repository-relative path of the item,
// e.g. "libs-release/org/example/app/1.0/app-1.0.jar".
func (i Item) FullPath() string {
	if i.Path == "" || i.Path == "." {
		return path.Join(i.Repo, i.Name)
	}
	return path.Join(i.Repo, i.Path, i.Name)
}

// Session is the server-side collaborator the cleanup engine talks to.
// Implementations are expected to be safe for sequential use only.
type Session interface {
	// Repositories lists the repository keys visible to the session.
	Repositories(ctx context.Context) ([]string, error)

	// List returns all items stored in the given repository.
	List(ctx context.Context, repo string) ([]Item, error)

	// Delete removes a single item from the server.
	Delete(ctx context.Context, item Item) error
}
