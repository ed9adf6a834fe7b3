package gateway

import (
	"bytes"
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/SergeyBogomolovv/shared-payment-service/internal/entities"
)

const (
	FieldSign     = "sign"
	FieldSignType = "sign_type"
	SignTypeMD5   = "MD5"
)

// Canonicalize joins the non-empty fields, except sign, as key=value pairs sorted by key.
// Values are used verbatim.
func Canonicalize(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k, v := range fields {
		if k == FieldSign || v == "" {
			continue
		}
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(fields[k])
	}
	return b.String()
}

// Sign returns the lower-case hex MD5 of the canonical string with the merchant secret appended.
func Sign(fields map[string]string, secret string) string {
	sum := md5.Sum([]byte(Canonicalize(fields) + "&key=" + secret))
	return hex.EncodeToString(sum[:])
}

// Verify recomputes the signature of fields and compares it with fields["sign"] in constant time.
func Verify(fields map[string]string, secret string) error {
	got := strings.ToLower(fields[FieldSign])
	if got == "" {
		return fmt.Errorf("%w: missing %s", entities.ErrSignatureInvalid, FieldSign)
	}
	if subtle.ConstantTimeCompare([]byte(got), []byte(Sign(fields, secret))) != 1 {
		return entities.ErrSignatureInvalid
	}
	return nil
}

// FieldsFromJSON flattens a JSON object into string fields.
// Numbers keep their literal text, null becomes empty, nested values are kept as compact JSON.
func FieldsFromJSON(body []byte) (map[string]string, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: body is not a JSON object: %v", entities.ErrValidation, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: body is not a JSON object", entities.ErrValidation)
	}

	fields := make(map[string]string, len(raw))
	for k, v := range raw {
		switch val := v.(type) {
		case nil:
			fields[k] = ""
		case string:
			fields[k] = val
		case json.Number:
			fields[k] = val.String()
		case bool:
			fields[k] = fmt.Sprint(val)
		default:
			nested, err := json.Marshal(val)
			if err != nil {
				return nil, fmt.Errorf("%w: field %s: %v", entities.ErrValidation, k, err)
			}
			fields[k] = string(nested)
		}
	}
	return fields, nil
}

// FieldsFromForm takes the first value of every form key.
func FieldsFromForm(form url.Values) map[string]string {
	fields := make(map[string]string, len(form))
	for k := range form {
		fields[k] = form.Get(k)
	}
	return fields
}
