package session

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Ucell-first/smppv5/frame"
	"github.com/Ucell-first/smppv5/pdu"
)

func testConfig() Config {
	return Config{
		EnquireLinkInterval:  50 * time.Millisecond,
		ResponseTimeout:      200 * time.Millisecond,
		SessionBindTimeout:   time.Second,
		GracefulCloseTimeout: time.Second,
	}
}

func pipe() (net.Conn, net.Conn) {
	return net.Pipe()
}

func TestBindAndSubmitRoundTrip(t *testing.T) {
	clientConn, serverConn := pipe()
	defer clientConn.Close()
	defer serverConn.Close()

	client := Dial(clientConn, testConfig())
	acceptor := NewAcceptor(serverConn, testConfig())

	serverDone := make(chan *Client, 1)
	go func() {
		req, err := acceptor.Accept(context.Background())
		require.NoError(t, err)
		require.Equal(t, pdu.BindTransceiverID, req.Kind())
		srv, err := req.Accept(pdu.StatusOK, pdu.NewBindTransceiverResp("smsc-01"))
		require.NoError(t, err)
		serverDone <- srv
	}()

	bindReq := pdu.NewBindTransceiver("client-01", "secret", "", 0x50,
		pdu.TONInternational, pdu.NPIISDN, "")
	resp, err := client.Bind(context.Background(), bindReq)
	require.NoError(t, err)
	require.Equal(t, pdu.BindTransceiverRespID, resp.Header.ID)
	require.Equal(t, StateBoundTrx, client.State())

	srv := <-serverDone
	defer srv.Close()
	require.Equal(t, StateBoundTrx, srv.State())

	go func() {
		evt := <-srv.Events()
		require.Equal(t, pdu.SubmitSmID, evt.Header.ID)
		submitResp := pdu.NewResponse(evt.Header.Sequence, pdu.StatusOK, pdu.NewSubmitSMResp("msg-1"))
		_ = srv.conn.WriteCommand(submitResp)
	}()

	submit := pdu.NewSubmitSM("", pdu.Address{}, pdu.Address{}, 0, 0, 0)
	submit.SetShortMessage([]byte("hello"))
	result, err := client.Submit(context.Background(), submit)
	require.NoError(t, err)
	require.Equal(t, pdu.SubmitSmRespID, result.Header.ID)
}

func TestBindRejectWritesResponseAndCloses(t *testing.T) {
	clientConn, serverConn := pipe()
	defer clientConn.Close()
	defer serverConn.Close()

	client := Dial(clientConn, testConfig())
	acceptor := NewAcceptor(serverConn, testConfig())

	go func() {
		req, err := acceptor.Accept(context.Background())
		require.NoError(t, err)
		require.NoError(t, req.Reject(pdu.StatusInvSysID))
	}()

	bindReq := pdu.NewBindTransmitter("bad-user", "secret", "", 0x50,
		pdu.TONInternational, pdu.NPIISDN, "")
	_, err := client.Bind(context.Background(), bindReq)
	require.Error(t, err)
	var sessErr *SessionError
	require.ErrorAs(t, err, &sessErr)
	require.Equal(t, uint32(pdu.StatusInvSysID), sessErr.Status)
}

func TestSubmitTimeoutWhenPeerNeverResponds(t *testing.T) {
	clientConn, serverConn := pipe()
	defer clientConn.Close()
	defer serverConn.Close()

	cfg := testConfig()
	cfg.ResponseTimeout = 30 * time.Millisecond
	client := Dial(clientConn, cfg)
	acceptor := NewAcceptor(serverConn, cfg)

	go func() {
		req, err := acceptor.Accept(context.Background())
		if err != nil {
			return
		}
		_, _ = req.Accept(pdu.StatusOK, pdu.NewBindTransceiverResp("smsc-01"))
		// never answer submit_sm
	}()

	bindReq := pdu.NewBindTransceiver("client-01", "secret", "", 0x50,
		pdu.TONInternational, pdu.NPIISDN, "")
	_, err := client.Bind(context.Background(), bindReq)
	require.NoError(t, err)

	submit := pdu.NewSubmitSM("", pdu.Address{}, pdu.Address{}, 0, 0, 0)
	submit.SetShortMessage([]byte("hello"))
	_, err = client.Submit(context.Background(), submit)
	require.Error(t, err)
	var timeoutErr *TimeoutError
	require.ErrorAs(t, err, &timeoutErr)
}

func TestSubmitBeforeBindRejected(t *testing.T) {
	clientConn, serverConn := pipe()
	defer clientConn.Close()
	defer serverConn.Close()

	client := Dial(clientConn, testConfig())
	defer client.Close()

	submit := pdu.NewSubmitSM("", pdu.Address{}, pdu.Address{}, 0, 0, 0)
	submit.SetShortMessage([]byte("hi"))
	_, err := client.Submit(context.Background(), submit)
	require.Error(t, err)
	var wrongState *ErrWrongState
	require.ErrorAs(t, err, &wrongState)
}

func TestCloseFailsPendingRequests(t *testing.T) {
	clientConn, serverConn := pipe()
	defer serverConn.Close()

	client := Dial(clientConn, testConfig())

	acceptor := NewAcceptor(serverConn, testConfig())
	go func() {
		req, err := acceptor.Accept(context.Background())
		if err != nil {
			return
		}
		_, _ = req.Accept(pdu.StatusOK, pdu.NewBindTransceiverResp("smsc-01"))
	}()

	bindReq := pdu.NewBindTransceiver("client-01", "secret", "", 0x50,
		pdu.TONInternational, pdu.NPIISDN, "")
	_, err := client.Bind(context.Background(), bindReq)
	require.NoError(t, err)

	resultCh := make(chan error, 1)
	go func() {
		submit := pdu.NewSubmitSM("", pdu.Address{}, pdu.Address{}, 0, 0, 0)
		submit.SetShortMessage([]byte("hi"))
		_, err := client.Submit(context.Background(), submit)
		resultCh <- err
	}()

	time.Sleep(20 * time.Millisecond)
	require.NoError(t, client.Close())

	select {
	case err := <-resultCh:
		require.Error(t, err)
	case <-time.After(time.Second):
		t.Fatal("pending submit never returned after Close")
	}
}

func TestPeerGoneClosesSession(t *testing.T) {
	clientConn, serverConn := pipe()
	defer clientConn.Close()

	cfg := testConfig()
	cfg.EnquireLinkInterval = 10 * time.Millisecond
	client := Dial(clientConn, cfg)

	// The session is never bound, so no enquire_link is sent; closing
	// serverConn makes the client's read fail, simulating a peer that
	// has gone away entirely, and the driver closes the session.
	go func() {
		time.Sleep(5 * time.Millisecond)
		serverConn.Close()
	}()

	require.Eventually(t, func() bool {
		return client.Closed()
	}, 2*time.Second, 10*time.Millisecond)
}

func TestKeepAliveLossWhenPeerNeverResponds(t *testing.T) {
	clientConn, serverConn := pipe()
	defer clientConn.Close()
	defer serverConn.Close()

	cfg := testConfig()
	cfg.EnquireLinkInterval = 50 * time.Millisecond
	cfg.ResponseTimeout = 50 * time.Millisecond
	client := Dial(clientConn, cfg)

	// A raw peer, not a session.Client: it completes the bind
	// handshake, then keeps reading frames off the wire (so the pipe
	// never backs up into an I/O error) but drops every one of them,
	// including enquire_link, without ever writing a reply.
	peer := frame.NewConn(serverConn, frame.DefaultMaxFrameSize)
	go func() {
		bindCmd, err := peer.ReadCommand(context.Background())
		if err != nil {
			return
		}
		resp := pdu.NewResponse(bindCmd.Header.Sequence, pdu.StatusOK, pdu.NewBindTransceiverResp("smsc-01"))
		if err := peer.WriteCommand(resp); err != nil {
			return
		}
		for {
			if _, err := peer.ReadCommand(context.Background()); err != nil {
				return
			}
		}
	}()

	bindReq := pdu.NewBindTransceiver("client-01", "secret", "", 0x50,
		pdu.TONInternational, pdu.NPIISDN, "")
	_, err := client.Bind(context.Background(), bindReq)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return client.Closed()
	}, 150*time.Millisecond, 5*time.Millisecond)

	var timeoutErr *TimeoutError
	require.ErrorAs(t, client.loadCloseErr(), &timeoutErr)
}
