// Package fileutil holds file permission modes shared by writers.
package fileutil

import "os"

// OwnerReadWrite is the mode for files that may hold tokens or API data.
const OwnerReadWrite os.FileMode = 0o600

// ReadableByAll is the mode for step output files read by later CI steps.
const ReadableByAll os.FileMode = 0o644
