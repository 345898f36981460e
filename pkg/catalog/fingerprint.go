// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/gowebpki/jcs"
)

// Fingerprint hashes the RFC 8785 canonical form of c with GeneratedAt
// cleared. Two builds over an unchanged corpus have equal fingerprints.
//
// Each game's content is replaced by the hash of its compacted bytes
// before canonicalization, so payload numbers never pass through float64.
// The fingerprint tracks content bytes, not numeric equality of payloads.
func Fingerprint(c *Catalog) (string, error) {
	stable := *c
	stable.GeneratedAt = time.Time{}
	stable.Games = make([]NormalizedGame, len(c.Games))
	for i, g := range c.Games {
		if len(g.Content) > 0 {
			g.Content = json.RawMessage(strconv.Quote(contentDigest(g.Content)))
		}
		stable.Games[i] = g
	}
	raw, err := json.Marshal(&stable)
	if err != nil {
		return "", fmt.Errorf("encoding catalog for fingerprint: %w", err)
	}
	canon, err := jcs.Transform(raw)
	if err != nil {
		return "", fmt.Errorf("canonicalizing catalog: %w", err)
	}
	return ContentHash(canon), nil
}

// contentDigest hashes content with insignificant whitespace removed, so
// an indented catalog read back from disk digests the same.
func contentDigest(content json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, content); err != nil {
		return ContentHash(content)
	}
	return ContentHash(buf.Bytes())
}
