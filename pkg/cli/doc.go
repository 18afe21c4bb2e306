/*
Package cli provides command-line interface utilities for artifactory-cleanup.

The cli package includes the shared command context with the Artifactory
connection settings, output formatters, progress reporters, and signal
handling helpers used by the artifactory-cleanup command.

Connection Settings:

Subcommands that talk to Artifactory receive the connection through the
ConnectionSource interface:

	server, user, password := connectionSource.GetConnection()

The values come back exactly as the user supplied them via flags,
environment, or the configuration file.

Output Formatting:

The cli package supports text and JSON output for displaying command
results:

	formatter := cli.NewFormatter(cli.FormatJSON)
	data := MyCommandResult{...}
	if err := formatter.FormatTo(os.Stdout, data); err != nil {
		return err
	}

Progress Reporting:

For long cleanup runs, use the progress reporter:

	progress := cli.NewProgressReporter(os.Stdout)
	progress.Start(totalArtifacts)
	for i := 0; i < totalArtifacts; i++ {
		// Do work
		progress.Update(i + 1)
	}
	progress.Finish()

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx := cli.SetupSignalHandler()
	// Use ctx for operations that should be cancelled on shutdown
*/
package cli
