// Package codec abstracts the encoding used when persisting ledger
// records, so stores do not depend on a concrete wire format.
package codec

type Codec interface {
	Marshal(v interface{}) ([]byte, error)
	Unmarshal(data []byte, v interface{}) error
}
