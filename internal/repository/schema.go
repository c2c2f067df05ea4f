package repository

import (
	"math"
	"strings"
	"time"
	"unicode"

	"github.com/limbo/squirrels/pkg/entity"
	"github.com/tidwall/gjson"
)

// Drop reasons, also used as metric labels.
const (
	reasonMissing        = "missing"
	reasonMalformed      = "malformed"
	reasonKeyMismatch    = "key_mismatch"
	reasonBadID          = "bad_id"
	reasonBlankName      = "blank_name"
	reasonUnknownChall   = "unknown_challenge"
	reasonBadActivity    = "bad_activity"
	reasonBadFriend      = "bad_friend"
	reasonBadTimestamp   = "bad_timestamp"
	reasonMalformedField = "malformed_field"
)

type schemaIssue struct {
	Path   string
	Reason string
}

// schemaDecoder reads the stored blob field by field, so one bad field only
// costs its own record.
type schemaDecoder struct {
	catalog *entity.Catalog
	issues  []schemaIssue
}

func (d *schemaDecoder) drop(path, reason string) {
	d.issues = append(d.issues, schemaIssue{Path: path, Reason: reason})
}

func isNull(r gjson.Result) bool {
	return !r.Exists() || r.Type == gjson.Null
}

func stringField(r gjson.Result) (string, bool) {
	if r.Type != gjson.String {
		return "", false
	}
	return r.Str, true
}

// decodeDatabase returns an empty database when the top level is not an
// object; it never fails.
func (d *schemaDecoder) decodeDatabase(blob []byte) entity.Database {
	db := entity.Database{}
	if !gjson.ValidBytes(blob) {
		d.drop("$", reasonMalformed)
		return db
	}
	root := gjson.ParseBytes(blob)
	if !root.IsObject() {
		d.drop("$", reasonMalformed)
		return db
	}
	root.ForEach(func(key, value gjson.Result) bool {
		if user, ok := d.decodeUser(key.String(), value); ok {
			db[user.ID] = user
		}
		return true
	})
	return db
}

func (d *schemaDecoder) decodeUser(key string, raw gjson.Result) (entity.User, bool) {
	path := "users." + key
	if !raw.IsObject() {
		d.drop(path, reasonMalformed)
		return entity.User{}, false
	}
	id, ok := stringField(raw.Get("id"))
	if !ok || id == "" {
		d.drop(path+".id", reasonMissing)
		return entity.User{}, false
	}
	if id != key {
		d.drop(path+".id", reasonKeyMismatch)
		return entity.User{}, false
	}
	if !validRecordID(id) {
		d.drop(path+".id", reasonBadID)
		return entity.User{}, false
	}
	name, ok := stringField(raw.Get("name"))
	if !ok || strings.TrimSpace(name) == "" {
		d.drop(path+".name", reasonBlankName)
		return entity.User{}, false
	}
	challenge, ok := stringField(raw.Get("challengeId"))
	if !ok {
		d.drop(path+".challengeId", reasonMissing)
		return entity.User{}, false
	}
	if _, known := d.catalog.Lookup(entity.ChallengeID(challenge)); !known {
		d.drop(path+".challengeId", reasonUnknownChall)
		return entity.User{}, false
	}
	return entity.User{
		ID:          id,
		Name:        name,
		ChallengeID: entity.ChallengeID(challenge),
		Activities:  d.decodeActivities(path, raw.Get("activities")),
		Friends:     d.decodeFriends(path, raw.Get("friends")),
	}, true
}

func (d *schemaDecoder) decodeActivities(path string, raw gjson.Result) []entity.Activity {
	out := make([]entity.Activity, 0)
	if isNull(raw) {
		return out
	}
	if !raw.IsArray() {
		d.drop(path+".activities", reasonMalformedField)
		return out
	}
	seen := make(map[string]struct{})
	raw.ForEach(func(_, item gjson.Result) bool {
		a, ok := d.decodeActivity(path, item)
		if !ok {
			return true
		}
		if _, dup := seen[a.ID]; dup {
			d.drop(path+".activities."+a.ID, reasonBadActivity)
			return true
		}
		seen[a.ID] = struct{}{}
		out = append(out, a)
		return true
	})
	return out
}

func (d *schemaDecoder) decodeActivity(path string, raw gjson.Result) (entity.Activity, bool) {
	if !raw.IsObject() {
		d.drop(path+".activities", reasonBadActivity)
		return entity.Activity{}, false
	}
	id, ok := stringField(raw.Get("id"))
	if !ok || id == "" {
		d.drop(path+".activities", reasonBadActivity)
		return entity.Activity{}, false
	}
	apath := path + ".activities." + id
	date, ok := stringField(raw.Get("date"))
	if !ok {
		d.drop(apath+".date", reasonBadActivity)
		return entity.Activity{}, false
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		d.drop(apath+".date", reasonBadActivity)
		return entity.Activity{}, false
	}
	value := raw.Get("value")
	if value.Type != gjson.Number || math.IsInf(value.Num, 0) || value.Num <= 0 {
		d.drop(apath+".value", reasonBadActivity)
		return entity.Activity{}, false
	}
	a := entity.Activity{ID: id, Date: date, Value: value.Num}
	if note := raw.Get("note"); !isNull(note) {
		if s, ok := stringField(note); ok {
			a.Note = s
		} else {
			d.drop(apath+".note", reasonMalformedField)
		}
	}
	if ts := raw.Get("timestamp"); !isNull(ts) {
		if ts.Type == gjson.Number && ts.Num >= 0 && ts.Num < math.MaxInt64 {
			a.Timestamp = ts.Int()
		} else {
			d.drop(apath+".timestamp", reasonBadTimestamp)
		}
	}
	return a, true
}

func (d *schemaDecoder) decodeFriends(path string, raw gjson.Result) []string {
	out := make([]string, 0)
	if isNull(raw) {
		return out
	}
	if !raw.IsArray() {
		d.drop(path+".friends", reasonMalformedField)
		return out
	}
	seen := make(map[string]struct{})
	raw.ForEach(func(_, item gjson.Result) bool {
		id, ok := stringField(item)
		if !ok || strings.TrimSpace(id) == "" {
			d.drop(path+".friends", reasonBadFriend)
			return true
		}
		if _, dup := seen[id]; !dup {
			seen[id] = struct{}{}
			out = append(out, id)
		}
		return true
	})
	return out
}

// decodeSession accepts the bare id the store writes and, for records written
// by other tools, a JSON-quoted string.
func decodeSession(raw []byte) (string, bool) {
	s := strings.TrimSpace(string(raw))
	if strings.HasPrefix(s, `"`) {
		if !gjson.Valid(s) {
			return "", false
		}
		parsed := gjson.Parse(s)
		if parsed.Type != gjson.String {
			return "", false
		}
		s = strings.TrimSpace(parsed.Str)
	}
	if s == "null" || !validRecordID(s) {
		return "", false
	}
	return s, true
}

// validRecordID is shared by user records and the session record so that any
// user the loader keeps can also be stored as the session.
func validRecordID(id string) bool {
	if id == "" {
		return false
	}
	for _, r := range id {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return false
		}
	}
	return true
}
