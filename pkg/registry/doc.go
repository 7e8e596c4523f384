// Package registry stores named Wake-on-LAN targets.
//
// A Device pairs a unique, human-chosen name with a MAC address. The Store
// interface has two implementations: MemoryStore for tests and short-lived
// processes, and SQLiteStore for a persistent registry on disk.
//
// Names are trimmed of surrounding whitespace and must be non-empty. They are
// unique and compared exactly. List returns devices ordered by name.
//
// MAC addresses are accepted in any format magic.ParseMAC understands and are
// stored normalised, so "AA-BB-CC-DD-EE-FF" and "aabb.ccdd.eeff" name the
// same hardware.
package registry
