// Package importers loads vocabulary from external files into a user's word list.
//
// # Architecture
//
//	Source File → Converter → RawWord → Pipeline → words.WordInput → WordCreator → Storage
//
// Each source implements the Converter interface, which turns a file into
// RawWord rows. The Pipeline skips rows whose word the user already has and
// creates the rest through the words repository, so every row goes through
// the same validation and tag normalization as the JSON API.
//
// # Existing Converters
//
//   - XLSXConverter: spreadsheet with the columns
//     word | pinyin | definition | part_of_speech | tags | notes
//
// # Example Usage
//
//	converter, err := importers.OpenXLSX("hsk1.xlsx", "")
//	if err != nil {
//		return err
//	}
//	result, err := importers.NewPipeline(repo).Import(userID, converter)
package importers
