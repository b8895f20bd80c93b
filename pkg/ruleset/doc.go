// Package ruleset compiles declarative YAML rule sets into validators from
// package validator and evaluates documents of field values against them.
//
// A rule set lists fields in evaluation order, each with its rules, plus
// named corpora used by unique, in and not_in rules:
//
//	corpora:
//	  usernames:
//	    postgres: {table: users, column: username}
//	  reserved:
//	    values: [admin, root]
//	fields:
//	  - name: username
//	    rules:
//	      - rule: trimmed_length
//	        min: 3
//	        max: 32
//	      - rule: not_in
//	        corpus: reserved
//	      - rule: unique
//	        corpus: usernames
//	  - name: price
//	    rules:
//	      - rule: valid_decimal
//	      - rule: decimal_places
//	        places: 2
//	  - name: day
//	    rules:
//	      - rule: day_of_month
//	        month_field: month
//
// Compile constructs every rule immediately. Invalid bounds, unknown rule
// kinds, missing parameters and unreachable corpora are reported as errors
// before any value is evaluated. The resulting Set is immutable.
//
// Set.Validate returns validator.ValidationErrors listing each failed rule
// with its field, reason and message arguments.
package ruleset
