package dataset

import (
	iradix "github.com/hashicorp/go-immutable-radix"
)

// Dictionary assigns dense codes, starting at 1, to the distinct labels of one dimension in
// first-appearance order.
type Dictionary struct {
	index  *iradix.Tree
	txn    *iradix.Txn
	labels []string
}

func NewDictionary() *Dictionary {
	return &Dictionary{index: iradix.New()}
}

// Begin batches the following Code calls into one radix transaction until Commit.
func (d *Dictionary) Begin() {
	if d.txn == nil {
		d.txn = d.index.Txn()
	}
}

func (d *Dictionary) Commit() {
	if d.txn == nil {
		return
	}
	d.index = d.txn.Commit()
	d.txn = nil
}

// Code returns the code of label, assigning the next free code on first sight.
func (d *Dictionary) Code(label string) int32 {
	if code, ok := d.Lookup(label); ok {
		return code
	}
	d.labels = append(d.labels, label)
	code := int32(len(d.labels))
	if d.txn != nil {
		d.txn.Insert([]byte(label), code)
	} else {
		d.index, _, _ = d.index.Insert([]byte(label), code)
	}
	return code
}

// Lookup returns the code of label if it has been assigned.
func (d *Dictionary) Lookup(label string) (int32, bool) {
	var v interface{}
	var ok bool
	if d.txn != nil {
		v, ok = d.txn.Get([]byte(label))
	} else {
		v, ok = d.index.Get([]byte(label))
	}
	if !ok {
		return 0, false
	}
	return v.(int32), true
}

// Label returns the label of code. Code 0 and unknown codes have no label.
func (d *Dictionary) Label(code int32) (string, bool) {
	if code <= 0 || int(code) > len(d.labels) {
		return "", false
	}
	return d.labels[code-1], true
}

func (d *Dictionary) Len() int {
	return len(d.labels)
}
