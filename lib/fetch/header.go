package fetch

import "net/textproto"

// Header is a case-insensitive header mapping. Keys are stored in
// canonical MIME form so "set-cookie" and "Set-Cookie" address the
// same entry.
type Header map[string][]string

func (h Header) Get(key string) string {
	if h == nil {
		return ""
	}
	vv := h[textproto.CanonicalMIMEHeaderKey(key)]
	if len(vv) == 0 {
		return ""
	}
	return vv[0]
}

// Values returns all values for key, in the order they were added.
func (h Header) Values(key string) []string {
	if h == nil {
		return nil
	}
	return h[textproto.CanonicalMIMEHeaderKey(key)]
}

func (h Header) Set(key, value string) {
	h[textproto.CanonicalMIMEHeaderKey(key)] = []string{value}
}

func (h Header) Add(key, value string) {
	k := textproto.CanonicalMIMEHeaderKey(key)
	h[k] = append(h[k], value)
}

func (h Header) Del(key string) {
	delete(h, textproto.CanonicalMIMEHeaderKey(key))
}

func (h Header) Clone() Header {
	if h == nil {
		return nil
	}
	out := make(Header, len(h))
	for k, vv := range h {
		out[k] = append([]string(nil), vv...)
	}
	return out
}
