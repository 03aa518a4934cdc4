package domain

// Document is a schema-less, string-keyed payload as supplied by callers
// and as stored in a collection.
type Document map[string]any

// Field names the services read. Everything else is passed through verbatim.
const (
	FieldID           = "_id"
	FieldEmail        = "email"
	FieldCreatorEmail = "creator_email"
	FieldCreationDate = "creation_date"
)

// String returns the string value stored under key.
// ok is false when the key is absent or not a string.
func (d Document) String(key string) (string, bool) {
	v, found := d[key]
	if !found {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// InsertResult is the storage acknowledgment for a single insert.
type InsertResult struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}
