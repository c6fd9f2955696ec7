package config

const SourceFileExt = ".my"

// SourceFileExtensions are all recognized source file extensions.
var SourceFileExtensions = []string{".my", ".mython"}

// ConfigFileName is looked up in the script's directory first, then the
// working directory.
const ConfigFileName = ".mython.yaml"

// DefaultMaxDepth bounds evaluator recursion to keep runaway Mython
// programs from overflowing the Go stack.
const DefaultMaxDepth = 10000
