package rules

import (
	"context"
	"testing"
	"time"

	"devopshq/artifactory-cleanup/pkg/artifactory"
)

var testNow = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func fileItem(repo, dir, name string, ageDays int) artifactory.Item {
	return artifactory.Item{
		Repo:    repo,
		Path:    dir,
		Name:    name,
		Size:    100,
		Created: testNow.AddDate(0, 0, -ageDays),
	}
}

func names(items []artifactory.Item) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Name)
	}
	return out
}

func TestDeleteOlderThan_Filter(t *testing.T) {
	rule := &DeleteOlderThan{days: 30, now: func() time.Time { return testNow }}

	items := []artifactory.Item{
		fileItem("repo", "a", "old.jar", 45),
		fileItem("repo", "a", "fresh.jar", 5),
		{Repo: "repo", Path: "a", Name: "dir", Folder: true, Created: testNow.AddDate(0, 0, -400)},
	}

	out, err := rule.Filter(context.Background(), items)
	if err != nil {
		t.Fatalf("Filter() error = %v, want nil", err)
	}

	if len(out) != 1 || out[0].Name != "old.jar" {
		t.Errorf("Filter() = %v, want [old.jar]", names(out))
	}
}

func TestDeleteNotUsedSince_Filter(t *testing.T) {
	rule := &DeleteNotUsedSince{days: 30, now: func() time.Time { return testNow }}

	stale := fileItem("repo", "a", "stale.jar", 90)
	stale.LastDownloaded = testNow.AddDate(0, 0, -60)

	active := fileItem("repo", "a", "active.jar", 90)
	active.LastDownloaded = testNow.AddDate(0, 0, -2)

	neverOld := fileItem("repo", "a", "never-old.jar", 90)
	neverNew := fileItem("repo", "a", "never-new.jar", 3)

	out, err := rule.Filter(context.Background(), []artifactory.Item{stale, active, neverOld, neverNew})
	if err != nil {
		t.Fatalf("Filter() error = %v, want nil", err)
	}

	got := names(out)
	want := []string{"stale.jar", "never-old.jar"}
	if len(got) != len(want) {
		t.Fatalf("Filter() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Filter()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDeleteWithoutDownloads_Filter(t *testing.T) {
	rule := &DeleteWithoutDownloads{}

	downloaded := fileItem("repo", "a", "used.jar", 10)
	downloaded.DownloadCount = 3
	downloaded.LastDownloaded = testNow.AddDate(0, 0, -1)

	never := fileItem("repo", "a", "never.jar", 10)

	out, err := rule.Filter(context.Background(), []artifactory.Item{downloaded, never})
	if err != nil {
		t.Fatalf("Filter() error = %v, want nil", err)
	}

	if len(out) != 1 || out[0].Name != "never.jar" {
		t.Errorf("Filter() = %v, want [never.jar]", names(out))
	}
}

func TestDeleteEmptyFolders_Filter(t *testing.T) {
	rule := &DeleteEmptyFolders{}

	items := []artifactory.Item{
		{Repo: "repo", Path: "libs", Name: "occupied", Folder: true},
		{Repo: "repo", Path: "libs/occupied", Name: "app.jar"},
		{Repo: "repo", Path: "libs", Name: "empty", Folder: true},
	}

	out, err := rule.Filter(context.Background(), items)
	if err != nil {
		t.Fatalf("Filter() error = %v, want nil", err)
	}

	if len(out) != 1 || out[0].Name != "empty" {
		t.Errorf("Filter() = %v, want [empty]", names(out))
	}
}

func TestKeepLatestNFiles_Filter(t *testing.T) {
	rule := &KeepLatestNFiles{count: 2}

	items := []artifactory.Item{
		fileItem("repo", "app", "v1.jar", 40),
		fileItem("repo", "app", "v2.jar", 30),
		fileItem("repo", "app", "v3.jar", 20),
		fileItem("repo", "app", "v4.jar", 10),
	}

	out, err := rule.Filter(context.Background(), items)
	if err != nil {
		t.Fatalf("Filter() error = %v, want nil", err)
	}

	// v4 and v3 are the two latest and must survive; v1 and v2 remain
	// deletion candidates, in listing order.
	got := names(out)
	want := []string{"v1.jar", "v2.jar"}
	if len(got) != len(want) {
		t.Fatalf("Filter() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Filter()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestIncludeExcludePath_Filter(t *testing.T) {
	items := []artifactory.Item{
		fileItem("repo", "snapshots/app", "a.jar", 10),
		fileItem("repo", "releases/app", "b.jar", 10),
	}

	include := &IncludePath{mask: "snapshots/*"}
	out, err := include.Filter(context.Background(), items)
	if err != nil {
		t.Fatalf("include Filter() error = %v, want nil", err)
	}
	if len(out) != 1 || out[0].Name != "a.jar" {
		t.Errorf("include Filter() = %v, want [a.jar]", names(out))
	}

	exclude := &ExcludePath{mask: "snapshots/*"}
	out, err = exclude.Filter(context.Background(), items)
	if err != nil {
		t.Fatalf("exclude Filter() error = %v, want nil", err)
	}
	if len(out) != 1 || out[0].Name != "b.jar" {
		t.Errorf("exclude Filter() = %v, want [b.jar]", names(out))
	}
}

func TestPropertyEq_Filter(t *testing.T) {
	rule := &PropertyEq{property: "retain", value: "false"}

	tagged := fileItem("repo", "a", "tagged.jar", 10)
	tagged.Properties = map[string]string{"retain": "false"}

	untagged := fileItem("repo", "a", "untagged.jar", 10)

	out, err := rule.Filter(context.Background(), []artifactory.Item{tagged, untagged})
	if err != nil {
		t.Fatalf("Filter() error = %v, want nil", err)
	}

	if len(out) != 1 || out[0].Name != "tagged.jar" {
		t.Errorf("Filter() = %v, want [tagged.jar]", names(out))
	}
}

func TestRepoByMask_MatchRepository(t *testing.T) {
	rule := &RepoByMask{mask: "docker-*-local"}

	if !rule.MatchRepository("docker-dev-local") {
		t.Error("MatchRepository(docker-dev-local) = false, want true")
	}
	if rule.MatchRepository("generic-dev-local") {
		t.Error("MatchRepository(generic-dev-local) = true, want false")
	}
}

func TestMatchMask(t *testing.T) {
	tests := []struct {
		mask string
		s    string
		want bool
	}{
		{"*", "anything/at/all", true},
		{"*.tmp", "repo.tmp", true},
		{"*.tmp", "repo.tmp2", false},
		{"a?c", "abc", true},
		{"a?c", "ac", false},
		{"snapshots/*", "snapshots/app/1.0", true},
		{"snapshots/*", "releases/app", false},
		{"", "", true},
		{"", "x", false},
	}

	for _, tt := range tests {
		if got := matchMask(tt.mask, tt.s); got != tt.want {
			t.Errorf("matchMask(%q, %q) = %v, want %v", tt.mask, tt.s, got, tt.want)
		}
	}
}

func TestDefinition_ParameterErrors(t *testing.T) {
	registry := NewRegistry()
	registry.RegisterBuiltins()

	tests := []struct {
		name   string
		rule   string
		params Params
	}{
		{"missing days", "delete_older_than", Params{}},
		{"non-integer days", "delete_older_than", Params{"days": "thirty"}},
		{"negative days", "delete_older_than", Params{"days": -1}},
		{"unknown parameter", "delete_older_than", Params{"days": 30, "dayz": 1}},
		{"missing count", "keep_latest_n_files", Params{}},
		{"zero count", "keep_latest_n_files", Params{"count": 0}},
		{"missing mask", "include_path", Params{}},
		{"non-string mask", "include_path", Params{"mask": 7}},
		{"unexpected params", "delete_without_downloads", Params{"days": 30}},
		{"missing value", "property_eq", Params{"property": "retain"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, err := registry.Get(tt.rule)
			if err != nil {
				t.Fatalf("Get(%q) error = %v, want nil", tt.rule, err)
			}

			if _, err := def.New(tt.params); err == nil {
				t.Errorf("New(%v) error = nil, want error", tt.params)
			}
		})
	}
}

func TestDefinition_FloatIntegerParameter(t *testing.T) {
	registry := NewRegistry()
	registry.RegisterBuiltins()

	def, err := registry.Get("delete_older_than")
	if err != nil {
		t.Fatalf("Get() error = %v, want nil", err)
	}

	// Generic decoding can hand integers over as float64.
	if _, err := def.New(Params{"days": float64(30)}); err != nil {
		t.Errorf("New(days: 30.0) error = %v, want nil", err)
	}
}

func TestParams_Bool(t *testing.T) {
	p := Params{"dry_run": true, "mask": "*.jar"}

	got, err := p.Bool("dry_run")
	if err != nil || !got {
		t.Errorf("Bool(dry_run) = %v, %v, want true, nil", got, err)
	}

	got, err = p.Bool("absent")
	if err != nil || got {
		t.Errorf("Bool(absent) = %v, %v, want false, nil", got, err)
	}

	if _, err := p.Bool("mask"); err == nil {
		t.Error("Bool(mask) error = nil for string value, want error")
	}
}

func TestParams_Duration(t *testing.T) {
	p := Params{"max_age": "72h", "mask": "*.jar"}

	got, err := p.Duration("max_age")
	if err != nil || got != 72*time.Hour {
		t.Errorf("Duration(max_age) = %v, %v, want 72h, nil", got, err)
	}

	if _, err := p.Duration("mask"); err == nil {
		t.Error("Duration(mask) error = nil for non-duration value, want error")
	}
	if _, err := p.Duration("absent"); err == nil {
		t.Error("Duration(absent) error = nil, want missing parameter error")
	}
}
