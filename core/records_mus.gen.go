// Code generated by musgen-go. DO NOT EDIT.

package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

var (
	slice6yVrVrpN38ogq9l8NsXQYQΞΞ = ord.NewSliceSer[string](ord.String)
)

var FetchStatusMUS = fetchStatusMUS{}

type fetchStatusMUS struct{}

func (s fetchStatusMUS) Marshal(v FetchStatus, bs []byte) (n int) {
	return varint.Int.Marshal(int(v), bs)
}

func (s fetchStatusMUS) Unmarshal(bs []byte) (v FetchStatus, n int, err error) {
	tmp, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return
	}
	v = FetchStatus(tmp)
	return
}

func (s fetchStatusMUS) Size(v FetchStatus) (size int) {
	return varint.Int.Size(int(v))
}

func (s fetchStatusMUS) Skip(bs []byte) (n int, err error) {
	return varint.Int.Skip(bs)
}

var IDMUS = iDMUS{}

type iDMUS struct{}

func (s iDMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (s iDMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	tmp, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil {
		return
	}
	v = ID(tmp)
	return
}

func (s iDMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

func (s iDMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

var NewsletterDocumentMUS = newsletterDocumentMUS{}

type newsletterDocumentMUS struct{}

func (s newsletterDocumentMUS) Marshal(v NewsletterDocument, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.MATID, bs[n:])
	n += ord.String.Marshal(v.SourceURL, bs[n:])
	n += ord.String.Marshal(v.ContentHash, bs[n:])
	n += ord.String.Marshal(v.Title, bs[n:])
	n += ord.String.Marshal(v.Text, bs[n:])
	n += slice6yVrVrpN38ogq9l8NsXQYQΞΞ.Marshal(v.Links, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.FetchedAt, bs[n:])
	return n + raw.TimeUnixMicro.Marshal(v.InsertedAt, bs[n:])
}

func (s newsletterDocumentMUS) Unmarshal(bs []byte) (v NewsletterDocument, n int, err error) {
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.MATID, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.SourceURL, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ContentHash, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Title, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Text, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Links, n1, err = slice6yVrVrpN38ogq9l8NsXQYQΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.FetchedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.InsertedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (s newsletterDocumentMUS) Size(v NewsletterDocument) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.MATID)
	size += ord.String.Size(v.SourceURL)
	size += ord.String.Size(v.ContentHash)
	size += ord.String.Size(v.Title)
	size += ord.String.Size(v.Text)
	size += slice6yVrVrpN38ogq9l8NsXQYQΞΞ.Size(v.Links)
	size += raw.TimeUnixMicro.Size(v.FetchedAt)
	return size + raw.TimeUnixMicro.Size(v.InsertedAt)
}

func (s newsletterDocumentMUS) Skip(bs []byte) (n int, err error) {
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = slice6yVrVrpN38ogq9l8NsXQYQΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	return
}

var SourcePageMUS = sourcePageMUS{}

type sourcePageMUS struct{}

func (s sourcePageMUS) Marshal(v SourcePage, bs []byte) (n int) {
	n = ord.String.Marshal(v.MATID, bs)
	n += ord.String.Marshal(v.URL, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.LastFetchAttempt, bs[n:])
	n += FetchStatusMUS.Marshal(v.LastStatus, bs[n:])
	return n + ord.String.Marshal(v.LastError, bs[n:])
}

func (s sourcePageMUS) Unmarshal(bs []byte) (v SourcePage, n int, err error) {
	v.MATID, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.URL, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.LastFetchAttempt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.LastStatus, n1, err = FetchStatusMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.LastError, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (s sourcePageMUS) Size(v SourcePage) (size int) {
	size = ord.String.Size(v.MATID)
	size += ord.String.Size(v.URL)
	size += raw.TimeUnixMicro.Size(v.LastFetchAttempt)
	size += FetchStatusMUS.Size(v.LastStatus)
	return size + ord.String.Size(v.LastError)
}

func (s sourcePageMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = FetchStatusMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	return
}
