// Package journal implements the teacher grade-entry grid: parsing a
// submitted batch of cell edits, applying them against storage, and
// building the grid read model for one scheduled session.
package journal

import (
	"strconv"
	"strings"
	"time"
)

const dateLayout = "02.01.06"

var errBadDate = "Неправильный формат даты, нужный формат: дд.мм.гг"

type EditKind int

const (
	SetMark EditKind = iota
	ClearMark
	SetCompletionDate
	ClearCompletion
)

// Edit is one typed operation against the journal grid.
//
// SetMark targets an existing mark when MarkID is set, otherwise it
// creates a mark for (TopicID, StudentID). SetCompletionDate updates an
// existing completion when CompletedTopicID is set, otherwise it
// creates one for TopicID.
type Edit struct {
	Kind             EditKind
	MarkID           uint
	TopicID          uint
	StudentID        uint
	Value            *uint // nil = absent
	CompletedTopicID uint
	Date             time.Time
}

// ParseEdits turns the flat key=value submission into typed edits.
//
// Key grammar (inherited from the grid form):
//
//	date_empty_<topicID>   create a completion for a topic without one
//	date_<ctID>_<topicID>  edit or clear an existing completion
//	<markID>               edit or clear an existing mark
//	<topicID>_<studentID>  create a mark for a cell without one
//
// A malformed date on the create path records a user-facing error; on
// the edit path it is skipped silently. The asymmetry is kept on
// purpose: it is the observed behavior of the grid.
func ParseEdits(form map[string]string, markValues []string, absentMark string) ([]Edit, []string) {
	var edits []Edit
	var errs []string

	accepted := make(map[string]struct{}, len(markValues))
	for _, v := range markValues {
		accepted[v] = struct{}{}
	}

	for key, value := range form {
		value = strings.TrimSpace(value)
		parts := strings.Split(key, "_")

		if parts[0] == "date" {
			if len(parts) != 3 {
				continue
			}
			if parts[1] == "empty" {
				topicID, err := parseID(parts[2])
				if err != nil || value == "" {
					continue
				}
				date, err := time.Parse(dateLayout, value)
				if err != nil {
					errs = append(errs, errBadDate)
					continue
				}
				edits = append(edits, Edit{Kind: SetCompletionDate, TopicID: topicID, Date: date})
				continue
			}
			ctID, err := parseID(parts[1])
			if err != nil {
				continue
			}
			if value == "" {
				edits = append(edits, Edit{Kind: ClearCompletion, CompletedTopicID: ctID})
				continue
			}
			date, err := time.Parse(dateLayout, value)
			if err != nil {
				continue // edit path: left unchanged
			}
			edits = append(edits, Edit{Kind: SetCompletionDate, CompletedTopicID: ctID, Date: date})
			continue
		}

		switch len(parts) {
		case 1:
			markID, err := parseID(parts[0])
			if err != nil {
				continue
			}
			if value == "" {
				edits = append(edits, Edit{Kind: ClearMark, MarkID: markID})
				continue
			}
			if _, ok := accepted[value]; !ok {
				continue
			}
			edits = append(edits, Edit{Kind: SetMark, MarkID: markID, Value: markValue(value, absentMark)})
		case 2:
			topicID, err1 := parseID(parts[0])
			studentID, err2 := parseID(parts[1])
			if err1 != nil || err2 != nil {
				continue
			}
			if _, ok := accepted[value]; !ok {
				continue // blank with no mark is a no-op
			}
			edits = append(edits, Edit{Kind: SetMark, TopicID: topicID, StudentID: studentID, Value: markValue(value, absentMark)})
		}
	}
	return edits, errs
}

func parseID(s string) (uint, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	return uint(n), err
}

func markValue(v, absentMark string) *uint {
	if v == absentMark {
		return nil
	}
	n, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		return nil
	}
	u := uint(n)
	return &u
}
