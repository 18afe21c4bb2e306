// Package policies provides cleanup policy loading: the Policy container,
// the loaders that turn an external definition source into an in-memory
// policy list, and the manager that keeps that list fresh for long-running
// daemons.
//
// # Definition Sources
//
// Two interchangeable loaders cover the supported definition kinds:
//
// YAMLLoader parses a structured definition file and resolves every rule
// record through a rules.Registry:
//
//	artifactory-cleanup:
//	  policies:
//	    - name: libs-release-local
//	      rules:
//	        - rule: repo
//	        - rule: delete_older_than
//	          days: 30
//
// ExtensionLoader loads a compiled Go plugin that exports a pre-built policy
// list under the symbol RULES, bypassing the registry entirely. A malformed
// extension is an unrecoverable configuration mistake, so its failures
// terminate the process instead of propagating.
//
// # Two-Phase Rule Construction
//
// A bare repository-selector record ("rule: repo" with no parameters) is
// deferred by the loader and resolved by the Policy constructor using the
// policy's own name, since by convention the policy name doubles as the
// repository key. After construction every element of Policy.Rules() is a
// fully instantiated rule.
//
// # Hot Reload
//
// Manager coordinates a loader with a debounced fsnotify watcher so daemon
// deployments pick up definition changes atomically, keeping the last good
// policy set when a reload fails.
package policies
