// Package document decodes ordered environment configuration documents.
//
// A document is YAML. Each top-level key names a section, and each section
// maps variable names to a value or a list of values:
//
//	Global: !omap
//	  SETTINGS: /Tools/Settings
//	  PYTHONPATH:
//	    - <PYTHONPATH>
//	    - <SETTINGS>/Python/common
//
//	Nuke: !omap
//	  NUKE_PATH:
//	    - <NUKE_PATH>
//	    - <SETTINGS>/nuke/gizmos
//
// Decoding always preserves the authored order of sections and of entries
// within a section, so the !omap tag is accepted but not required. The
// standard !!omap sequence form is accepted as well:
//
//	Global: !!omap
//	  - SETTINGS: /Tools/Settings
//	  - SHOWS: /My/Shows
//
// Top-level pairs whose value is a scalar or a plain list are entries of an
// unnamed section.
package document
