package cmd

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hkds/client"
	"hkds/keys"
	"hkds/packet"
	"hkds/params"
	"hkds/report"
	"hkds/server"
)

var demoLevel string

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Walk through provisioning and one transaction end to end",
	Run:   runDemo,
}

func init() {
	demoCmd.Flags().StringVar(&demoLevel, "level", "256", "security level: 128, 256 or 512")
}

func levelByFlag(s string) (params.Level, error) {
	switch s {
	case "128":
		return params.Level128, nil
	case "256":
		return params.Level256, nil
	case "512":
		return params.Level512, nil
	default:
		return params.Level{}, fmt.Errorf("unknown level %q", s)
	}
}

func runDemo(cmd *cobra.Command, args []string) {
	level, err := levelByFlag(demoLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "demo:", err)
		os.Exit(1)
	}

	var rows [][2]string

	kid := [params.KIDSize]byte{0xDE, 0xAD, 0xBE, 0xEF}
	mdk, err := server.GenerateMDK(params.CryptoRandSource, kid, level)
	if err != nil {
		fmt.Fprintln(os.Stderr, "demo: generate mdk:", err)
		os.Exit(1)
	}
	defer mdk.Zero()

	did := keys.NewDeviceID(0x00010203, params.PIDKMAC, level.ProtocolID, 0x0001, 0x00000001)
	ksn := keys.NewKSN(did)

	req := packet.ClientTokenRequest{ProtocolID: level.ProtocolID, KSN: ksn}
	rows = append(rows, [2]string{"ClientTokenRequest", hex.EncodeToString(req.Marshal())})

	srv := server.New(ksn, mdk, level, params.DefaultCacheMultiplier)
	etok := srv.EncryptToken()
	resp := packet.ServerTokenResponse{ProtocolID: level.ProtocolID, ETOK: etok}
	rows = append(rows, [2]string{"ServerTokenResponse", hex.EncodeToString(resp.Marshal())})

	edk := server.GenerateEDK(mdk.BDK, did, level)
	cl, err := client.New(level, params.DefaultCacheMultiplier, edk, did)
	if err != nil {
		fmt.Fprintln(os.Stderr, "demo: client init:", err)
		os.Exit(1)
	}
	defer cl.Zero()

	if err := cl.InstallToken(etok); err != nil {
		fmt.Fprintln(os.Stderr, "demo: install token:", err)
		os.Exit(1)
	}

	var pt [params.MessageSize]byte
	copy(pt[:], []byte("HKDS DEMO TXN!!!")[:params.MessageSize])
	ad := []byte{0xC0, 0xA8, 0x00, 0x01}
	authed, err := cl.EncryptAuthenticate(pt, ad)
	if err != nil {
		fmt.Fprintln(os.Stderr, "demo: encrypt:", err)
		os.Exit(1)
	}

	msgReq := packet.ClientMessageRequest{ProtocolID: level.ProtocolID, KSN: ksn}
	copy(msgReq.CT[:], authed[:params.MessageSize])
	copy(msgReq.Tag[:], authed[params.MessageSize:])
	rows = append(rows, [2]string{"ClientMessageRequest", hex.EncodeToString(msgReq.Marshal())})

	verifyState := server.New(ksn, mdk, level, params.DefaultCacheMultiplier)
	decrypted, ok := verifyState.DecryptVerifyMessage(authed, ad)
	if !ok {
		fmt.Fprintln(os.Stderr, "demo: server rejected authenticated message")
		os.Exit(1)
	}
	msgResp := packet.ServerMessageResponse{ProtocolID: level.ProtocolID, MSG: decrypted}
	rows = append(rows, [2]string{"ServerMessageResponse", hex.EncodeToString(msgResp.Marshal())})

	report.PrintPacketTrace(rows)
	fmt.Printf("\nrecovered plaintext: %q\n", decrypted)
}
