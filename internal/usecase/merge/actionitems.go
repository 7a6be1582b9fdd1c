package merge

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/johnquangdev/account-intel/internal/domain/entities"
	"github.com/johnquangdev/account-intel/internal/domain/sources"
)

// An "assignee header" line opens a block of items owned by one person,
// e.g. "Sarah Chen:", "- **sarah@acme.com:**", "Sarah Chen (sarah@acme.com):".
// Subsequent non-header lines are attributed to the most recent header until
// the next header or the end of the block.
var (
	assigneeHeaderRe = regexp.MustCompile(`^\s*(?:[-*•]\s*)?\*{0,2}([^:]+?)\*{0,2}:\s*$`)
	bulletPrefixRe   = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])\s*`)
	headerEmailRe    = regexp.MustCompile(`\(([^()\s]+@[^()\s]+)\)`)
	dueClauseRe      = regexp.MustCompile(`(?i)\(?\bdue(?:\s+by)?:?\s+([A-Za-z0-9, /-]+?)\)?\s*$`)
)

var dueDateLayouts = []string{
	"2006-01-02",
	"Jan 2, 2006",
	"Jan 2 2006",
	"January 2, 2006",
	"01/02/2006",
}

// parseActionItems scans the call record's action-item text block.
// Item ids are the deterministic composite <record-id>-item-<index> so a
// rerun over identical input produces identical items.
func (m *Merger) parseActionItems(rec *sources.CallRecord) []entities.ActionItem {
	if strings.TrimSpace(rec.ActionItemsText) == "" {
		return nil
	}

	var items []entities.ActionItem
	assignee := ""
	idx := 0

	for _, raw := range strings.Split(rec.ActionItemsText, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if match := assigneeHeaderRe.FindStringSubmatch(raw); match != nil {
			assignee = strings.TrimSpace(match[1])
			continue
		}

		desc := bulletPrefixRe.ReplaceAllString(line, "")
		if desc == "" {
			continue
		}

		item := entities.NewActionItem(fmt.Sprintf("%s-item-%d", rec.ID, idx), desc)
		idx++
		item.CreatedAt = rec.Date
		item.Source = rec.Title
		item.Assignee = assignee
		item.Owner = m.resolveOwner(assignee, rec.Participants)
		if due, ok := parseDueDate(desc); ok {
			item.DueDate = &due
		}
		items = append(items, *item)
	}
	return items
}

// resolveOwner maps an assignee header to ours/theirs. The header may be an
// email address, a display name of a call participant, or a name with the
// email in parentheses. Ownership is theirs iff the resolved address is
// external; an unresolvable assignee defaults to ours.
func (m *Merger) resolveOwner(assignee string, parts []sources.CallParticipant) entities.ActionOwner {
	if assignee == "" {
		return entities.OwnerOurs
	}

	email := ""
	if match := headerEmailRe.FindStringSubmatch(assignee); match != nil {
		email = match[1]
	} else if strings.Contains(assignee, "@") {
		email = assignee
	} else {
		lowered := strings.ToLower(assignee)
		for _, cp := range parts {
			if strings.ToLower(cp.Name) == lowered {
				email = cp.Email
				break
			}
		}
	}

	email = entities.NormalizeEmail(email)
	if email == "" {
		return entities.OwnerOurs
	}
	if m.IsInternal(email) {
		return entities.OwnerOurs
	}
	return entities.OwnerTheirs
}

func parseDueDate(desc string) (time.Time, bool) {
	match := dueClauseRe.FindStringSubmatch(desc)
	if match == nil {
		return time.Time{}, false
	}
	raw := strings.TrimSpace(match[1])
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
