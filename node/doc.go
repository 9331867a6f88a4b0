// Package node drives the Node.js tools around generated TypeScript files:
// package manager detection, dependency installation, prettier formatting,
// and tsconfig.json path aliases.
//
// Every function that runs an external program takes a context and the
// project directory the program runs in.
package node
