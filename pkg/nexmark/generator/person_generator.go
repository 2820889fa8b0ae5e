package generator

import (
	"fmt"
	"strings"

	"nexmark-bench/pkg/nexmark/ntypes"
	"nexmark-bench/pkg/nexmark/utils"
)

var (
	US_STATES   = [6]string{"AZ", "CA", "ID", "OR", "WA", "WY"}
	US_CITIES   = [10]string{"Phoenix", "Los Angeles", "San Francisco", "Boise", "Portland", "Bend", "Redmond", "Seattle", "Kent", "Cheyenne"}
	FIRST_NAMES = [11]string{"Peter", "Paul", "Luke", "John", "Saul", "Vicky", "Kate", "Julie", "Sarah", "Deiter", "Walter"}
	LAST_NAMES  = [9]string{"Shultz", "Abrams", "Spencer", "White", "Bartels", "Walton", "Smith", "Jones", "Noris"}
)

func NextPerson(nextEventId uint64, timestamp uint64, config *GeneratorConfig) *ntypes.Person {
	id := LastBase0PersonId(config, nextEventId) + FIRST_PERSON_ID
	name := nextPersonName(nextEventId)
	email := nextEmail(nextEventId)
	creditCard := nextCreditCard(nextEventId)
	state := nextUSState(nextEventId)
	city := nextUSCity(nextEventId)
	currentSize := 8 + len(name) + len(email) + len(creditCard) + len(city) + len(state)
	extra := NextExtra(nextEventId, PERSON_EXTRA, uint32(currentSize), config.Configuration.AvgPersonByteSize)
	return &ntypes.Person{
		ID:           id,
		Name:         name,
		EmailAddress: email,
		CreditCard:   creditCard,
		City:         city,
		State:        state,
		DateTime:     int64(timestamp),
		Extra:        extra,
	}
}

// NextBase0PersonId picks a cold person reference: uniform over the active
// window minus its hot subset. Always an id allocated at or before eventId.
func NextBase0PersonId(eventId uint64, pickTag FieldId, config *GeneratorConfig) uint64 {
	numPeople := LastBase0PersonId(config, eventId) + 1
	activePeople := utils.Min(numPeople, uint64(config.Configuration.NumActivePeople))
	windowStart := numPeople - activePeople
	hot := utils.Min(activePeople, HOT_SUBSET_SIZE)
	if activePeople == hot {
		return windowStart + NextUint64(eventId, pickTag, activePeople)
	}
	return windowStart + hot + NextUint64(eventId, pickTag, activePeople-hot)
}

// HotBase0PersonId picks a hot person reference: uniform over the oldest few
// ids of the active window.
func HotBase0PersonId(eventId uint64, pickTag FieldId, config *GeneratorConfig) uint64 {
	numPeople := LastBase0PersonId(config, eventId) + 1
	activePeople := utils.Min(numPeople, uint64(config.Configuration.NumActivePeople))
	windowStart := numPeople - activePeople
	return windowStart + NextUint64(eventId, pickTag, utils.Min(activePeople, HOT_SUBSET_SIZE))
}

// LastBase0PersonId returns the last valid person id (ignoring FIRST_PERSON_ID)
// allocated at or before eventId. Will be the current person id if due to
// generate a person.
func LastBase0PersonId(config *GeneratorConfig, eventId uint64) uint64 {
	epoch := eventId / uint64(config.TotalProportion)
	offset := eventId % uint64(config.TotalProportion)
	if offset >= uint64(config.PersonProportion) {
		offset = uint64(config.PersonProportion) - 1
	}
	return epoch*uint64(config.PersonProportion) + offset
}

func nextUSState(seed uint64) string {
	return US_STATES[NextUint64(seed, PERSON_STATE, uint64(len(US_STATES)))]
}

func nextUSCity(seed uint64) string {
	return US_CITIES[NextUint64(seed, PERSON_CITY, uint64(len(US_CITIES)))]
}

func nextPersonName(seed uint64) string {
	return FIRST_NAMES[NextUint64(seed, PERSON_FIRST_NAME, uint64(len(FIRST_NAMES)))] +
		" " +
		LAST_NAMES[NextUint64(seed, PERSON_LAST_NAME, uint64(len(LAST_NAMES)))]
}

func nextEmail(seed uint64) string {
	return NextString(seed, PERSON_EMAIL_LOCAL, 7) + "@" + NextString(seed, PERSON_EMAIL_DOMAIN, 5) + ".com"
}

func nextCreditCard(seed uint64) string {
	var sb strings.Builder
	for i := 0; i < 4; i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(fmt.Sprintf("%04d", fieldBlock(seed, PERSON_CREDIT_CARD, uint32(i))%10000))
	}
	return sb.String()
}
