package cli

import "testing"

func TestContextGetConnection(t *testing.T) {
	ctx := NewContext("https://repo.example.com/artifactory", "cleanup-bot", "s3cret", "policies.yaml", false)

	server, user, password := ctx.GetConnection()
	if server != "https://repo.example.com/artifactory" {
		t.Errorf("server = %q, want %q", server, "https://repo.example.com/artifactory")
	}
	if user != "cleanup-bot" {
		t.Errorf("user = %q, want %q", user, "cleanup-bot")
	}
	if password != "s3cret" {
		t.Errorf("password = %q, want %q", password, "s3cret")
	}
}

func TestContextGetConnectionPassthrough(t *testing.T) {
	// Values must come back exactly as provided, including trailing
	// slashes, empty strings, and whitespace.
	tests := []struct {
		name     string
		server   string
		user     string
		password string
	}{
		{"trailing slash", "https://repo.example.com/artifactory/", "admin", "pass"},
		{"empty credentials", "https://repo.example.com", "", ""},
		{"whitespace preserved", " https://repo.example.com ", "user ", " pass"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := NewContext(tt.server, tt.user, tt.password, "", false)
			server, user, password := ctx.GetConnection()
			if server != tt.server || user != tt.user || password != tt.password {
				t.Errorf("GetConnection() = (%q, %q, %q), want (%q, %q, %q)",
					server, user, password, tt.server, tt.user, tt.password)
			}
		})
	}
}

func TestContextAccessors(t *testing.T) {
	ctx := NewContext("https://repo.example.com", "u", "p", "/etc/cleanup/policies.yaml", true)

	if ctx.PolicyFile() != "/etc/cleanup/policies.yaml" {
		t.Errorf("PolicyFile() = %q, want %q", ctx.PolicyFile(), "/etc/cleanup/policies.yaml")
	}
	if !ctx.Destroy() {
		t.Error("Destroy() = false, want true")
	}
}

func TestContextImplementsConnectionSource(t *testing.T) {
	var _ ConnectionSource = NewContext("", "", "", "", false)
}
