// Package dtaus reads and writes DTAUS streams made of one or more
// logical files.
//
// Parse decodes a whole stream up front and fails closed: a single bad
// record discards every logical file, including those already assembled.
// The returned Parser selects the first logical file; Select switches to
// another one and Next walks its transactions. For independent traversal
// use LogicalFile.Iterator.
//
//	p, err := dtaus.ParseFile("dtaus0.txt", dtaus.WithTolerance(codec.TranslateLegacyCharacters))
//	if err != nil {
//		return err
//	}
//	for n := 1; n <= p.Count(); n++ {
//		_ = p.Select(n)
//		for tx := p.Next(); tx != nil; tx = p.Next() {
//			fmt.Println(tx)
//		}
//	}
//
// Writer is the inverse: it encodes header, transactions and trailer of a
// LogicalFile in order. NewLogicalFile, Add and Seal assemble files on the
// write path.
package dtaus
