// Package docconv extracts plain text from Word documents.
//
// Modern .docx files are read directly from their WordprocessingML part.
// Legacy .doc files are handed to the antiword command line tool.
package docconv
