package normalize

import "strings"

// ToSnakeCase converts a camelCase key to snake_case, leaving dots in place.
// "bookingDate" -> "booking_date", "transactionAmount.amount" ->
// "transaction_amount.amount". Already snake_case keys pass through
// unchanged.
func ToSnakeCase(key string) string {
	if key == "" {
		return key
	}
	var b strings.Builder
	b.Grow(len(key) + 4)
	for i, r := range key {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// RightOfDot keeps the rightmost segment of a dotted path.
// "transaction_amount.amount" -> "amount".
func RightOfDot(key string) string {
	if i := strings.LastIndex(key, "."); i >= 0 {
		return key[i+1:]
	}
	return key
}

// CleanKey applies the full key translation: camelCase to snake_case, then
// dotted paths flattened to their rightmost segment.
func CleanKey(key string) string {
	return RightOfDot(ToSnakeCase(key))
}

// Flatten expands nested maps into dotted paths, one level per dot.
// {"transactionAmount": {"amount": "-6.99"}} -> {"transactionAmount.amount": "-6.99"}.
func Flatten(raw map[string]any) map[string]any {
	out := make(map[string]any, len(raw))
	flattenInto(out, "", raw)
	return out
}

func flattenInto(out map[string]any, prefix string, raw map[string]any) {
	for k, v := range raw {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := v.(map[string]any); ok {
			flattenInto(out, key, nested)
			continue
		}
		out[key] = v
	}
}

// CleanKeys flattens raw and translates every key via CleanKey. When two raw
// keys clean to the same name the later one wins; aggregator payloads do not
// collide in practice.
func CleanKeys(raw map[string]any) map[string]any {
	flat := Flatten(raw)
	out := make(map[string]any, len(flat))
	for k, v := range flat {
		out[CleanKey(k)] = v
	}
	return out
}
