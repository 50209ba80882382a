// Package render presents analysis reports as CSV, JSON and PNG plots.
package render
