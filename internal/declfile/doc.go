// Package declfile loads schema declarations from YAML files and builds
// runnable schemas from them.
//
// A declaration file names one or more schemas, each an ordered list of
// field definitions. Leaf fields carry the usual pipeline configuration
// (source, target, required, default, type, transforms, choices, mapping);
// composite fields nest their children under a fallback, combine, nested,
// or accumulate block. Schemas can extend an earlier schema in the same
// file, overriding fields by name.
//
//	version: "1"
//	schemas:
//	  - name: user
//	    fields:
//	      - name: id
//	        source: user_id
//	        required: true
//	        type: int
//	      - name: email
//	        source: email_addr
//	        required: true
//	        transform: [strip, lower]
//	      - name: status
//	        source: state
//	        default: active
//	        choices: [active, disabled]
//	      - name: contact
//	        fallback:
//	          primary: {source: email}
//	          backup: {source: phone}
//	      - name: full_name
//	        accumulate:
//	          separator: " "
//	          fields: [{source: first_name}, {source: last_name}]
//	  - name: admin
//	    extends: user
//	    fields:
//	      - name: role
//	        source: role
//	        default: admin
//
// Transform names resolve against a registry seeded from the transforms
// package; type names cover int, float, string, and bool. Condition
// evaluators are code, not data, so conditional fields cannot be declared
// in YAML — they are attached programmatically.
//
// Validation collects every problem in a file into diagnostics rather than
// stopping at the first.
package declfile
