// Package dataset turns raw character tables into validated domain datasets.
package dataset
