package rules

// builtinDefinitions enumerates every rule type shipped with the tool.
// New built-ins are added here so that RegisterBuiltins picks them up.
func builtinDefinitions() []*Definition {
	return []*Definition{
		repoDefinition(),
		repoByMaskDefinition(),
		deleteOlderThanDefinition(),
		deleteNotUsedSinceDefinition(),
		deleteWithoutDownloadsDefinition(),
		deleteEmptyFoldersDefinition(),
		keepLatestNFilesDefinition(),
		includePathDefinition(),
		excludePathDefinition(),
		propertyEqDefinition(),
	}
}
