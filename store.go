package sift

// Document is one indexed unit of text. Documents are immutable once added.
type Document struct {
	ID       uint32
	Text     string
	Metadata map[string]any
}

// indexedDocument is a stored document plus what scoring needs from it.
type indexedDocument struct {
	Document

	// filter holds the document's distinct term hashes
	filter MembershipFilter
	// termCounts maps each distinct token to its occurrences in the document
	termCounts map[string]int
	// tokens is the total token count, duplicates included
	tokens int
}

// documentStore is an append-only list of documents where a document's id
// is its position.
type documentStore struct {
	docs []*indexedDocument
}

// nextID returns the id the next appended document will get.
func (s *documentStore) nextID() uint32 {
	return uint32(len(s.docs))
}

func (s *documentStore) append(doc *indexedDocument) uint32 {
	doc.ID = s.nextID()
	s.docs = append(s.docs, doc)
	return doc.ID
}

func (s *documentStore) get(id uint32) (*indexedDocument, bool) {
	if int(id) >= len(s.docs) {
		return nil, false
	}
	return s.docs[id], true
}

func (s *documentStore) len() int {
	return len(s.docs)
}
