// Artifactory-cleanup removes stale artifacts from JFrog Artifactory
// repositories according to declarative cleanup policies.
//
// Policies live in a YAML definition file (or a compiled extension) and
// chain rules: delete rules select removal candidates, keep rules protect
// artifacts that must survive. Runs are dry-run by default; deletion has
// to be requested explicitly.
//
// Usage:
//
//	# Show what would be removed (dry run)
//	artifactory-cleanup run
//
//	# Actually delete
//	artifactory-cleanup run --destroy
//
//	# Check a definition file without touching the server
//	artifactory-cleanup validate --policies policies.yaml
//
//	# Run on a schedule with metrics and hot reload
//	artifactory-cleanup daemon
//
//	# Show version information
//	artifactory-cleanup version
package main

func main() {
	Execute()
}
