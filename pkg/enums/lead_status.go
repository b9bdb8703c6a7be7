package enums

import "fmt"

// LeadStatus is a pipeline label. The accepted set is configurable per
// deployment, so values are validated against a LeadStatusSet rather than a
// closed list.
type LeadStatus string

const (
	LeadStatusInitialContact     LeadStatus = "INITIAL_CONTACT"
	LeadStatusCold               LeadStatus = "COLD"
	LeadStatusWarm               LeadStatus = "WARM"
	LeadStatusWaitingForLocation LeadStatus = "WAITING_FOR_LOCATION"
	LeadStatusNegotiations       LeadStatus = "NEGOTIATIONS"
	LeadStatusFollowUp           LeadStatus = "FOLLOW_UP"
	LeadStatusDateShipment       LeadStatus = "DATE_SHIPMENT"
	LeadStatusWon                LeadStatus = "WON"
	LeadStatusLost               LeadStatus = "LOST"
	LeadStatusCancelled          LeadStatus = "CANCELLED"
)

// DefaultLeadStatuses is the stock pipeline.
var DefaultLeadStatuses = []LeadStatus{
	LeadStatusInitialContact,
	LeadStatusCold,
	LeadStatusWarm,
	LeadStatusWaitingForLocation,
	LeadStatusNegotiations,
	LeadStatusFollowUp,
	LeadStatusDateShipment,
	LeadStatusWon,
	LeadStatusLost,
	LeadStatusCancelled,
}

// String implements fmt.Stringer.
func (l LeadStatus) String() string {
	return string(l)
}

// LeadStatusSet is the ordered list of statuses a deployment accepts. The
// first entry is the status new leads start in.
type LeadStatusSet struct {
	ordered []LeadStatus
	index   map[LeadStatus]struct{}
}

// NewLeadStatusSet builds a set from raw labels, falling back to the stock
// pipeline when labels is empty.
func NewLeadStatusSet(labels []string) LeadStatusSet {
	set := LeadStatusSet{index: map[LeadStatus]struct{}{}}
	for _, label := range labels {
		status := LeadStatus(Normalize(label))
		if status == "" {
			continue
		}
		if _, ok := set.index[status]; ok {
			continue
		}
		set.index[status] = struct{}{}
		set.ordered = append(set.ordered, status)
	}
	if len(set.ordered) == 0 {
		for _, status := range DefaultLeadStatuses {
			set.index[status] = struct{}{}
			set.ordered = append(set.ordered, status)
		}
	}
	return set
}

// Contains reports whether status belongs to the set.
func (s LeadStatusSet) Contains(status LeadStatus) bool {
	_, ok := s.index[status]
	return ok
}

// Parse normalizes raw input and checks it against the set.
func (s LeadStatusSet) Parse(value string) (LeadStatus, error) {
	status := LeadStatus(Normalize(value))
	if !s.Contains(status) {
		return "", fmt.Errorf("invalid lead status %q", value)
	}
	return status, nil
}

// Initial returns the status assigned to freshly created leads.
func (s LeadStatusSet) Initial() LeadStatus {
	if len(s.ordered) == 0 {
		return LeadStatusInitialContact
	}
	return s.ordered[0]
}

// Values returns a copy of the ordered statuses.
func (s LeadStatusSet) Values() []LeadStatus {
	return append([]LeadStatus(nil), s.ordered...)
}
