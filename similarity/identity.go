package similarity

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/intelfusion/case-similarity-api/models"
)

// unknownCode stands in for a missing category or city code in case IDs
const unknownCode = "UNK"

// Fingerprint builds the content+location+time tuple both identifiers
// are derived from
func Fingerprint(r models.Report) string {
	return fmt.Sprintf("%s-%s-%s", r.Input, r.Address(), r.CreatedAt)
}

// DataID returns the report identifier. A caller-supplied ID is used
// verbatim; otherwise the ID is the deterministic MD5-based UUID of the
// fingerprint, so the same input, address and creation timestamp always
// hash to the same ID and duplicate submissions collapse into one stored
// record.
func DataID(r models.Report) string {
	if r.ID != "" {
		return r.ID
	}
	return uuid.NewMD5(uuid.NameSpaceOID, []byte(Fingerprint(r))).String()
}

// CaseID synthesizes the human-scannable case identifier
// {category}-{location_code}-{yyyymm}-{daily_index}-{hash4}. Uniqueness is
// carried by the store's primary key, not this format; hash4 is only a
// disambiguator.
func CaseID(category, cityCode string, created time.Time, dataID, fingerprint string) string {
	if category == "" {
		category = unknownCode
	}
	if cityCode == "" {
		cityCode = unknownCode
	}
	sum := sha256.Sum256([]byte(fingerprint))
	hash4 := strings.ToUpper(hex.EncodeToString(sum[:]))[:4]
	dailyIndex := dataID
	if len(dataID) > 2 {
		dailyIndex = dataID[len(dataID)-2:]
	}
	return fmt.Sprintf("%s-%s-%s-%s-%s", category, cityCode, created.Format("200601"), dailyIndex, hash4)
}
