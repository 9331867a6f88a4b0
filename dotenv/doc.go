// Package dotenv extracts typed variable declarations from dotenv documents
// and renders TypeScript artifacts from them.
//
// # Annotations
//
// A declaration may be typed by the comment line closest above it:
//
//	# @type number
//	PORT=8080
//
//	# @type 'development' | 'production'
//	NODE_ENV=development
//
//	API_KEY=secret
//
// The type is one of string, number, boolean, or a union of single-quoted
// literals. Malformed annotations are treated as absent. Only [ParseHint]
// reports them as errors.
//
// # Pipeline
//
// Each document is reduced to a [Document] by [Extract]. Documents are merged
// left to right by [Merge] into a [Registry], which fails with
// [*ConflictError] when two documents annotate the same key differently.
// [MergeKeys] merges without hints and never fails.
//
// [RenderDeclarations] writes the NodeJS.ProcessEnv declaration and
// [RenderSchemaModule] writes a zod schema module whose client and server
// tables are split by a [Classifier].
package dotenv
