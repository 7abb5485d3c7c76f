// Package interchange converts collections to and from the CSV files and
// ZIP backup archives users exchange with the application.
//
// Decoding is lenient in the way spreadsheet exports require: headers are
// matched case-insensitively, short lines are skipped, and unparsable
// numbers read as zero. Records that cannot be made valid are reported as
// apperrors.MalformedRecordError values and reject the whole file.
package interchange
