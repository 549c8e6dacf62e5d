package pdu

import (
	"bytes"
	"testing"
)

func TestBindTransceiverRoundTrip(t *testing.T) {
	b := NewBindTransceiver("test", "pw", "", 0x50, TONUnknown, NPIUnknown, "")
	buf, err := b.MarshalBody()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	cmd, err := Decode(Header{ID: BindTransceiverID, Sequence: 1}, buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	got, ok := cmd.Body.(*BindTransceiver)
	if !ok {
		t.Fatalf("body type %T", cmd.Body)
	}
	if got.SystemID != "test" || got.Password != "pw" {
		t.Fatalf("got %+v", got)
	}
}

func TestBindTransceiverRespWithInterfaceVersion(t *testing.T) {
	v := byte(0x50)
	resp := NewBindTransceiverResp("smsc01")
	resp.SCInterfaceVersion = &v
	buf, err := resp.MarshalBody()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	cmd, err := Decode(Header{ID: BindTransceiverRespID, Sequence: 1}, buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	got := cmd.Body.(*BindTransceiverResp)
	if got.SystemID != "smsc01" || got.SCInterfaceVersion == nil || *got.SCInterfaceVersion != v {
		t.Fatalf("got %+v", got)
	}
}

// TestSubmitSMInlineShortMessage covers a plain submit_sm short
// message scenario: service_type="", source_addr="111",
// destination_addr="222", short_message="hi".
func TestSubmitSMInlineShortMessage(t *testing.T) {
	s := NewSubmitSM("", Address{Addr: "111"}, Address{Addr: "222"}, 0, 0, 0)
	if ok := s.SetShortMessage([]byte("hi")); !ok {
		t.Fatal("SetShortMessage rejected")
	}
	buf, err := s.MarshalBody()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := []byte{0} // service_type empty
	want = append(want, 0, 0)
	want = append(want, []byte("111")...)
	want = append(want, 0)
	want = append(want, 0, 0)
	want = append(want, []byte("222")...)
	want = append(want, 0)
	want = append(want, 0, 0, 0) // esm_class, protocol_id, priority_flag
	want = append(want, 0)       // schedule_delivery_time empty -> single NUL
	want = append(want, 0)       // validity_period empty -> single NUL
	want = append(want, 0, 0, 0, 0, 2, 'h', 'i')
	if !bytes.Equal(buf, want) {
		t.Fatalf("got  %x\nwant %x", buf, want)
	}

	cmd, err := Decode(Header{ID: SubmitSmID, Sequence: 4}, buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	got := cmd.Body.(*SubmitSM)
	data, viaPayload := got.ShortMessage()
	if viaPayload || string(data) != "hi" {
		t.Fatalf("got data=%q viaPayload=%v", data, viaPayload)
	}
}

// TestSubmitSMMessagePayload matches the scenario where the message
// is carried by the message_payload TLV (tag 0x0424) with sm_length
// left at zero and short_message empty.
func TestSubmitSMMessagePayload(t *testing.T) {
	payload := bytes.Repeat([]byte{'x'}, 500)
	s := NewSubmitSM("", Address{Addr: "111"}, Address{Addr: "222"}, 0, 0, 0)
	if ok := s.SetMessagePayload(payload); !ok {
		t.Fatal("SetMessagePayload rejected")
	}
	buf, err := s.MarshalBody()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	cmd, err := Decode(Header{ID: SubmitSmID, Sequence: 5}, buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	got := cmd.Body.(*SubmitSM)
	data, viaPayload := got.ShortMessage()
	if !viaPayload || !bytes.Equal(data, payload) {
		t.Fatalf("viaPayload=%v len=%d", viaPayload, len(data))
	}
}

func TestSubmitSMMutualExclusionRejectsBoth(t *testing.T) {
	s := NewSubmitSM("", Address{Addr: "111"}, Address{Addr: "222"}, 0, 0, 0)
	if ok := s.SetShortMessage([]byte("hi")); !ok {
		t.Fatal("SetShortMessage rejected")
	}
	if ok := s.SetMessagePayload([]byte("payload")); ok {
		t.Fatal("expected SetMessagePayload to reject when short_message is set")
	}
}

func TestSubmitSMMutualExclusionRejectedOnMarshal(t *testing.T) {
	s := NewSubmitSM("", Address{Addr: "111"}, Address{Addr: "222"}, 0, 0, 0)
	// Bypass the builder to simulate a PDU that reached an invalid state.
	s.shortMessage = []byte("hi")
	s.messagePayload = []byte("payload")
	buf, err := s.smBody.marshal()
	if err == nil {
		t.Fatalf("marshal should reject violated state, got buf %x", buf)
	}
}

func TestSubmitSMRespRoundTrip(t *testing.T) {
	resp := NewSubmitSMResp("msg-123")
	buf, err := resp.MarshalBody()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	cmd, err := Decode(Header{ID: SubmitSmRespID, Sequence: 4}, buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cmd.Body.(*SubmitSMResp).MessageID != "msg-123" {
		t.Fatalf("got %+v", cmd.Body)
	}
}

func TestDataSMRoundTrip(t *testing.T) {
	d := NewDataSM("", Address{Addr: "111"}, Address{Addr: "222"}, 0, 0, 0)
	if err := d.SetMessagePayload([]byte("hello")); err != nil {
		t.Fatalf("SetMessagePayload: %v", err)
	}
	buf, err := d.MarshalBody()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	cmd, err := Decode(Header{ID: DataSmID, Sequence: 9}, buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	got := cmd.Body.(*DataSM)
	payload, ok := got.MessagePayload()
	if !ok || string(payload) != "hello" {
		t.Fatalf("payload=%q ok=%v", payload, ok)
	}
}

func TestReplaceSMRoundTrip(t *testing.T) {
	r := NewReplaceSM("msg-1", Address{Addr: "111"}, 1)
	r.ShortMessage = []byte("updated")
	buf, err := r.MarshalBody()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	cmd, err := Decode(Header{ID: ReplaceSmID, Sequence: 2}, buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	got := cmd.Body.(*ReplaceSM)
	if got.MessageID != "msg-1" || string(got.ShortMessage) != "updated" {
		t.Fatalf("got %+v", got)
	}
}

func TestReplaceSMMessagePayloadRoundTrip(t *testing.T) {
	r := NewReplaceSM("msg-1", Address{Addr: "111"}, 1)
	r.MessagePayload = []byte("a longer replacement body")
	buf, err := r.MarshalBody()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	cmd, err := Decode(Header{ID: ReplaceSmID, Sequence: 2}, buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	got := cmd.Body.(*ReplaceSM)
	if len(got.ShortMessage) != 0 || string(got.MessagePayload) != "a longer replacement body" {
		t.Fatalf("got %+v", got)
	}
}

func TestReplaceSMRejectsBothShortMessageAndPayload(t *testing.T) {
	r := NewReplaceSM("msg-1", Address{Addr: "111"}, 1)
	r.ShortMessage = []byte("short")
	r.MessagePayload = []byte("payload")
	if _, err := r.MarshalBody(); err == nil {
		t.Fatal("expected mutual exclusion error")
	}
}

func TestCancelSMRoundTrip(t *testing.T) {
	c := NewCancelSM("", "msg-1", Address{Addr: "111"}, Address{Addr: "222"})
	buf, err := c.MarshalBody()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	cmd, err := Decode(Header{ID: CancelSmID, Sequence: 3}, buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	got := cmd.Body.(*CancelSM)
	if got.MessageID != "msg-1" || got.Dest.Addr != "222" {
		t.Fatalf("got %+v", got)
	}
}

func TestQuerySMRoundTrip(t *testing.T) {
	q := NewQuerySM("msg-1", Address{Addr: "111"})
	buf, err := q.MarshalBody()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	cmd, err := Decode(Header{ID: QuerySmID, Sequence: 7}, buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cmd.Body.(*QuerySM).MessageID != "msg-1" {
		t.Fatalf("got %+v", cmd.Body)
	}

	resp := NewQuerySMResp("msg-1", MessageStateDelivered, 0)
	buf, err = resp.MarshalBody()
	if err != nil {
		t.Fatalf("marshal resp: %v", err)
	}
	cmd, err = Decode(Header{ID: QuerySmRespID, Sequence: 7}, buf)
	if err != nil {
		t.Fatalf("decode resp: %v", err)
	}
	gotResp := cmd.Body.(*QuerySMResp)
	if gotResp.State != MessageStateDelivered {
		t.Fatalf("got %+v", gotResp)
	}
}

func TestSubmitMultiRoundTrip(t *testing.T) {
	dests := []DestAddress{
		{Flag: DestFlagSMEAddress, SME: Address{Addr: "111"}},
		{Flag: DestFlagDistributionList, DistributionList: "mylist"},
	}
	s, err := NewSubmitMulti("", Address{Addr: "000"}, dests)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	s.ShortMessage = []byte("hi")
	buf, err := s.MarshalBody()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	cmd, err := Decode(Header{ID: SubmitMultiID, Sequence: 11}, buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	got := cmd.Body.(*SubmitMulti)
	if got.Dests.Len() != 2 {
		t.Fatalf("got %d dests", got.Dests.Len())
	}
	if got.Dests.Items()[1].DistributionList != "mylist" {
		t.Fatalf("got %+v", got.Dests.Items()[1])
	}
}

func TestSubmitMultiTooManyDestsRejected(t *testing.T) {
	dests := make([]DestAddress, 256)
	for i := range dests {
		dests[i] = DestAddress{Flag: DestFlagSMEAddress, SME: Address{Addr: "1"}}
	}
	if _, err := NewSubmitMulti("", Address{Addr: "000"}, dests); err == nil {
		t.Fatal("expected TooManyElements error")
	}
}

func TestAlertNotificationRoundTrip(t *testing.T) {
	a := NewAlertNotification(Address{Addr: "111"}, Address{Addr: "222"})
	buf, err := a.MarshalBody()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	cmd, err := Decode(Header{ID: AlertNotificationID, Sequence: 1}, buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	got := cmd.Body.(*AlertNotificationPDU)
	if got.Source.Addr != "111" || got.ESME.Addr != "222" {
		t.Fatalf("got %+v", got)
	}
}

func TestOutbindRoundTrip(t *testing.T) {
	o := &Outbind{SystemID: "smsc01", Password: "pw"}
	buf, err := o.MarshalBody()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	cmd, err := Decode(Header{ID: OutbindID}, buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	got := cmd.Body.(*Outbind)
	if got.SystemID != "smsc01" || got.Password != "pw" {
		t.Fatalf("got %+v", got)
	}
}

func TestEmptyBodyPDUs(t *testing.T) {
	for _, id := range []CommandID{EnquireLinkID, EnquireLinkRespID, UnbindID, UnbindRespID, GenericNackID} {
		cmd, err := Decode(Header{ID: id}, nil)
		if err != nil {
			t.Fatalf("decode %s: %v", id, err)
		}
		buf, err := Encode(cmd)
		if err != nil || len(buf) != 0 {
			t.Fatalf("%s: encode buf=%x err=%v", id, buf, err)
		}
	}
}

func TestUnrecognizedCommandID(t *testing.T) {
	_, err := Decode(Header{ID: CommandID(0x7fffffff)}, nil)
	if err == nil {
		t.Fatal("expected UnrecognizedCommandError")
	}
	if _, ok := err.(*UnrecognizedCommandError); !ok {
		t.Fatalf("got %T", err)
	}
}

func TestDestAddressUnsupportedKey(t *testing.T) {
	d := DestAddress{Flag: DestFlag(0x99)}
	if _, err := d.encode(nil); err == nil {
		t.Fatal("expected UnsupportedKeyError")
	}
}
