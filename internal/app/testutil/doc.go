// Package testutil provides mocks and fixtures shared by package tests:
// testify mocks of api.Transcriber and repository.RecordStore, sample
// history records, a fixed clock, and helpers that create CSV stores and
// fake audio files in t.TempDir().
package testutil
