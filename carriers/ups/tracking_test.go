package ups

import (
	"carrier-gateway-service/shipping"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func TestBuildTrackRequest(t *testing.T) {
	m := render(t, BuildTrackRequest(" 1Z5FX0076803466397 "))

	assert.Equal(t, "Track", m.String("TrackRequest", "Request", "RequestAction"))
	assert.Equal(t, "1", m.String("TrackRequest", "Request", "RequestOption"))
	assert.Equal(t, "1Z5FX0076803466397", m.String("TrackRequest", "TrackingNumber"))
}

func TestParseTrackResponse(t *testing.T) {
	result, err := ParseTrackResponse(fixture(t, "track_response.xml"))
	require.NoError(t, err)

	assert.Equal(t, "1Z5FX0076803466397", result.TrackingNumber)
	require.NotNil(t, result.Origin)
	require.NotNil(t, result.Destination)
	assert.Equal(t, "NAPERVILLE", result.Origin.City)
	assert.Equal(t, "K1N5X8", result.Destination.PostalCode)

	names := make([]string, len(result.Events))
	for i, e := range result.Events {
		names[i] = e.Description
	}
	assert.Equal(t, []string{
		"BILLING INFORMATION RECEIVED",
		"IMPORT SCAN",
		"LOCATION SCAN",
		"DEPARTURE SCAN",
		"ARRIVAL SCAN",
		"OUT FOR DELIVERY",
		"DELIVERED",
	}, names)

	first := result.Events[0]
	assert.Equal(t, "175 AMBASSADOR", first.Location.Address1, "earliest event anchored to origin")
	assert.Equal(t, time.Date(2008, 1, 4, 12, 0, 0, 0, time.UTC), first.Time)

	last := result.Events[len(result.Events)-1]
	assert.Equal(t, result.Destination, last.Location)
	assert.Equal(t, "1 RIDEAU ST", last.Location.Address1)
	assert.Equal(t, time.Date(2008, 1, 8, 15, 14, 0, 0, time.UTC), last.Time)

	assertChronological(t, result.Events)
}

func TestParseTrackResponse_NoShipment(t *testing.T) {
	_, err := ParseTrackResponse(fixture(t, "track_no_shipment_response.xml"))
	require.ErrorIs(t, err, shipping.ErrMalformedResponse)
	assert.Contains(t, err.Error(), "Shipment")
}

func TestParseTrackResponse_CarrierFailure(t *testing.T) {
	resp := `<TrackResponse><Response><ResponseStatusCode>0</ResponseStatusCode><Error><ErrorSeverity>Hard</ErrorSeverity><ErrorCode>151018</ErrorCode><ErrorDescription>Invalid tracking number</ErrorDescription></Error></Response></TrackResponse>`

	result, err := ParseTrackResponse(resp)
	assert.Nil(t, result)
	require.ErrorIs(t, err, shipping.ErrCarrierFailure)
	assert.Contains(t, err.Error(), "Invalid tracking number")
}

func TestParseTrackResponse_SingleActivityAndPackageTrackingNumber(t *testing.T) {
	resp := `<TrackResponse>
  <Response><ResponseStatusCode>1</ResponseStatusCode></Response>
  <Shipment>
    <Shipper><Address><City>TORONTO</City><CountryCode>CA</CountryCode></Address></Shipper>
    <Package>
      <TrackingNumber>1Z999</TrackingNumber>
      <Activity>
        <ActivityLocation><Address><City>TORONTO</City><CountryCode>CA</CountryCode></Address></ActivityLocation>
        <Status><StatusType><Description>ORIGIN SCAN</Description></StatusType></Status>
        <Date>20240301</Date><Time>081500</Time>
      </Activity>
    </Package>
  </Shipment>
</TrackResponse>`

	result, err := ParseTrackResponse(resp)
	require.NoError(t, err)
	assert.Equal(t, "1Z999", result.TrackingNumber)
	assert.Nil(t, result.Destination)
	require.Len(t, result.Events, 1)
	assert.Equal(t, result.Origin, result.Events[0].Location)
}

func TestParseTrackResponse_NoActivities(t *testing.T) {
	resp := `<TrackResponse><Response><ResponseStatusCode>1</ResponseStatusCode></Response><Shipment><Shipper><Address><CountryCode>US</CountryCode></Address></Shipper><Package><TrackingNumber>1Z1</TrackingNumber></Package></Shipment></TrackResponse>`

	result, err := ParseTrackResponse(resp)
	require.NoError(t, err)
	assert.Empty(t, result.Events, "no synthetic origin event without activities")
}

func TestParseTrackResponse_BadActivityDate(t *testing.T) {
	resp := `<TrackResponse><Response><ResponseStatusCode>1</ResponseStatusCode></Response><Shipment><Package><Activity><Date>2024</Date><Time>101010</Time></Activity></Package></Shipment></TrackResponse>`

	_, err := ParseTrackResponse(resp)
	assert.ErrorIs(t, err, shipping.ErrMalformedResponse)
}

func assertChronological(t *testing.T, events []shipping.ShipmentEvent) {
	t.Helper()
	for i := 1; i < len(events); i++ {
		assert.False(t, events[i].Time.Before(events[i-1].Time), "event %d is earlier than event %d", i, i-1)
	}
}

func loc(city, country string) *shipping.Location {
	return &shipping.Location{City: city, CountryCode: country}
}

func TestReconcileEvents_OriginMatchReplacesFirst(t *testing.T) {
	origin := &shipping.Location{Address1: "1 Main St", City: "Ottawa", CountryCode: "CA"}
	activities := []Activity{
		{Description: "ARRIVAL SCAN", Date: "20240302", Time: "100000", Location: loc("Toronto", "CA")},
		{Description: "ORIGIN SCAN", Date: "20240301", Time: "090000", Location: loc("Ottawa", "CA")},
	}

	events, err := ReconcileEvents(activities, origin, nil)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "ORIGIN SCAN", events[0].Description)
	assert.Same(t, origin, events[0].Location)
	assert.Equal(t, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), events[0].Time)
	assert.Equal(t, "Toronto", events[1].Location.City)
}

func TestReconcileEvents_BlankCityMatches(t *testing.T) {
	origin := loc("Ottawa", "CA")
	activities := []Activity{
		{Description: "MANIFEST", Date: "20240301", Time: "090000", Location: loc("", "ca")},
	}

	events, err := ReconcileEvents(activities, origin, nil)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Same(t, origin, events[0].Location)
}

func TestReconcileEvents_MismatchInsertsOriginEvent(t *testing.T) {
	tests := map[string]*shipping.Location{
		"different city":    loc("Montreal", "CA"),
		"different country": loc("Ottawa", "US"),
		"unknown location":  nil,
	}
	for name, first := range tests {
		t.Run(name, func(t *testing.T) {
			origin := loc("Ottawa", "CA")
			activities := []Activity{
				{Description: "DEPARTURE SCAN", Date: "20240303", Time: "120000", Location: loc("Toronto", "CA")},
				{Description: "PICKUP SCAN", Date: "20240302", Time: "080000", Location: first},
			}

			events, err := ReconcileEvents(activities, origin, nil)
			require.NoError(t, err)
			require.Len(t, events, 3)

			assert.Same(t, origin, events[0].Location)
			assert.Equal(t, "PICKUP SCAN", events[0].Description)
			assert.Equal(t, events[1].Time, events[0].Time)
			assert.Equal(t, "PICKUP SCAN", events[1].Description)
			assert.Equal(t, first, events[1].Location, "the earliest carrier event keeps its location")
			assertChronological(t, events)
		})
	}
}

func TestReconcileEvents_UnknownOriginLeavesEvents(t *testing.T) {
	activities := []Activity{
		{Description: "SCAN", Date: "20240302", Time: "080000", Location: loc("Toronto", "CA")},
	}
	events, err := ReconcileEvents(activities, nil, nil)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Toronto", events[0].Location.City)
}

func TestReconcileEvents_DeliveredMovesToDestination(t *testing.T) {
	destination := &shipping.Location{City: "Vancouver", PostalCode: "V6B 1A1", CountryCode: "CA"}
	activities := []Activity{
		{Description: "Delivered", Date: "20240305", Time: "160000", Location: loc("Burnaby", "CA")},
		{Description: "OUT FOR DELIVERY", Date: "20240305", Time: "070000", Location: loc("Burnaby", "CA")},
	}

	events, err := ReconcileEvents(activities, nil, destination)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Same(t, destination, events[1].Location)
	assert.Equal(t, "Delivered", events[1].Description)
	assert.Equal(t, time.Date(2024, 3, 5, 16, 0, 0, 0, time.UTC), events[1].Time)
}

func TestReconcileEvents_NotDeliveredKeepsLocation(t *testing.T) {
	destination := loc("Vancouver", "CA")
	activities := []Activity{
		{Description: "DELIVERY ATTEMPTED", Date: "20240305", Time: "160000", Location: loc("Burnaby", "CA")},
	}

	events, err := ReconcileEvents(activities, nil, destination)
	require.NoError(t, err)
	assert.Equal(t, "Burnaby", events[0].Location.City)
}

func TestReconcileEvents_StableForEqualTimes(t *testing.T) {
	activities := []Activity{
		{Description: "A", Date: "20240301", Time: "100000"},
		{Description: "B", Date: "20240301", Time: "100000"},
		{Description: "C", Date: "20240301", Time: "090000"},
	}

	events, err := ReconcileEvents(activities, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "C", events[0].Description)
	assert.Equal(t, "A", events[1].Description)
	assert.Equal(t, "B", events[2].Description)
}

func TestReconcileEvents_Empty(t *testing.T) {
	events, err := ReconcileEvents(nil, loc("Ottawa", "CA"), loc("Toronto", "CA"))
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestActivityTime(t *testing.T) {
	at, err := ActivityTime("20080108", "151400")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2008, 1, 8, 15, 14, 0, 0, time.UTC), at)

	at, err = ActivityTime("20080108", "15:14")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2008, 1, 8, 15, 14, 0, 0, time.UTC), at)

	at, err = ActivityTime("", "151400")
	require.NoError(t, err)
	assert.True(t, at.IsZero())

	_, err = ActivityTime("20081308", "151400")
	assert.Error(t, err)
	_, err = ActivityTime("20080108", "1")
	assert.Error(t, err)
}

func TestParseTrackResponse_EmptyActivity(t *testing.T) {
	resp := `<TrackResponse><Response><ResponseStatusCode>1</ResponseStatusCode></Response><Shipment><Package>
<Activity><Status><StatusType><Description>ORIGIN SCAN</Description></StatusType></Status><Date>20240301</Date><Time>081500</Time></Activity>
<Activity/>
</Package></Shipment></TrackResponse>`

	_, err := ParseTrackResponse(resp)

	var me *shipping.MalformedResponseError
	require.ErrorAs(t, err, &me)
	assert.Contains(t, me.Path, "Activity[1]")
}

func TestActivityTime_ClockOutOfRange(t *testing.T) {
	for _, clock := range []string{"250000", "2400", "126000", "120060"} {
		_, err := ActivityTime("20240301", clock)
		assert.Error(t, err, clock)
	}

	at, err := ActivityTime("20240301", "235959")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 23, 59, 59, 0, time.UTC), at)
}
