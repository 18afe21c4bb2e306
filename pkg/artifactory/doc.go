// Package artifactory defines the contract between the cleanup engine and an
// Artifactory server: the Item metadata that rules filter on, and the Session
// interface a transport implementation must provide.
//
// The package deliberately contains no HTTP transport. The cleanup runner and
// the rule implementations only depend on Session, so tests and alternative
// backends can supply their own implementation.
package artifactory
