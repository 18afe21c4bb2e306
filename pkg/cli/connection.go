package cli

// Context carries the resolved command-line state shared by subcommands:
// the Artifactory connection settings and the policy definition file.
// Values come from flags, environment, or the configuration file; by the
// time a Context exists they are already merged.
type Context struct {
	artifactoryServer string
	user              string
	password          string
	policyFile        string
	destroy           bool
}

// NewContext creates a CLI context from resolved settings.
func NewContext(server, user, password, policyFile string, destroy bool) *Context {
	return &Context{
		artifactoryServer: server,
		user:              user,
		password:          password,
		policyFile:        policyFile,
		destroy:           destroy,
	}
}

// PolicyFile returns the path to the policy definition file.
func (c *Context) PolicyFile() string {
	return c.policyFile
}

// Destroy reports whether deletions are actually performed. False means
// dry-run.
func (c *Context) Destroy() bool {
	return c.destroy
}

// ConnectionSource exposes the Artifactory connection settings held by a
// CLI context. Consumers that only need credentials take this interface
// instead of the full context.
type ConnectionSource interface {
	// GetConnection returns the server URL, user, and password exactly as
	// they were provided. No normalization or validation happens here;
	// the session layer decides what to do with them.
	GetConnection() (server, user, password string)
}

// GetConnection implements ConnectionSource.
func (c *Context) GetConnection() (server, user, password string) {
	return c.artifactoryServer, c.user, c.password
}
