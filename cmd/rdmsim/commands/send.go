package commands

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/openlighting/rdmresponder/internal/rdm"
)

// controllerUID is the synthetic source UID rdmsim uses when manually
// probing its own fleet.
var controllerUID = rdm.NewUID(0x746f, 1)

var sendTransactionCounter uint8

func sendCmd() *cobra.Command {
	var (
		uidFlag  string
		pidFlag  string
		ccFlag   string
		dataFlag string
		subFlag  uint16
	)

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send a single RDM request to a simulated responder",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			responder, ok := fleet[uidFlag]
			if !ok {
				return fmt.Errorf("no responder configured with UID %q", uidFlag)
			}

			pid, err := parsePID(pidFlag)
			if err != nil {
				return err
			}

			cc, err := parseCommandClass(ccFlag)
			if err != nil {
				return err
			}

			data, err := parseParamData(dataFlag)
			if err != nil {
				return fmt.Errorf("--data: %w", err)
			}

			req := &rdm.RDMRequest{
				SourceUID:         controllerUID,
				DestinationUID:    responder.UID(),
				TransactionNumber: nextTransactionNumber(),
				PortID:            1,
				SubDevice:         subFlag,
				CommandClass:      cc,
				ParamID:           pid,
				ParamData:         data,
			}

			start := time.Now()
			var status rdm.Status
			var resp *rdm.RDMResponse
			responder.SendRDMRequest(req, func(s rdm.Status, r *rdm.RDMResponse) {
				status = s
				resp = r
			})
			elapsed := time.Since(start)

			metrics.RecordRequest(responder.UID().String(), status.String(), pid)
			metrics.ObserveDispatchLatency(responder.UID().String(), pid, elapsed.Seconds())
			if resp != nil && resp.ResponseType == rdm.ResponseTypeNackReason {
				if reason, ok := rdm.ExtractUint16(resp.ParamData); ok {
					metrics.RecordNack(responder.UID().String(), rdm.NackReason(reason).String())
				}
			}

			logger.Debug("rdm dispatch",
				"uid", responder.UID(),
				"pid", fmt.Sprintf("0x%04x", pid),
				"cc", ccFlag,
				"status", status,
				"elapsed", elapsed,
			)

			printResponse(status, resp, pid)
			return nil
		},
	}

	cmd.Flags().StringVar(&uidFlag, "uid", "", "target responder UID (manufacturer:device hex)")
	cmd.Flags().StringVar(&pidFlag, "pid", "", "parameter ID, hex (e.g. 0x0060)")
	cmd.Flags().StringVar(&ccFlag, "cc", "get", "command class: get or set")
	cmd.Flags().StringVar(&dataFlag, "data", "", "parameter data, hex-encoded")
	cmd.Flags().Uint16Var(&subFlag, "subdevice", rdm.RootRDMDevice, "sub-device number")
	_ = cmd.MarkFlagRequired("uid")
	_ = cmd.MarkFlagRequired("pid")

	return cmd
}

func nextTransactionNumber() uint8 {
	sendTransactionCounter++
	return sendTransactionCounter
}

func parsePID(s string) (uint16, error) {
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "0x"), 16, 16)
	if err != nil {
		return 0, fmt.Errorf("parse PID %q: %w", s, err)
	}
	return uint16(v), nil
}

// parseParamData decodes a hex parameter-data argument, enforcing the RDM
// payload ceiling before the request is ever built.
func parseParamData(s string) ([]byte, error) {
	data, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, fmt.Errorf("parse parameter data: %w", err)
	}
	if len(data) > rdm.MaxParamDataSize {
		return nil, fmt.Errorf("parameter data is %d bytes: %w", len(data), rdm.ErrParamDataTooLarge)
	}
	return data, nil
}

func parseCommandClass(s string) (rdm.CommandClass, error) {
	switch strings.ToLower(s) {
	case "get":
		return rdm.CCGetCommand, nil
	case "set":
		return rdm.CCSetCommand, nil
	default:
		return 0, fmt.Errorf("--cc must be get or set, got %q", s)
	}
}

func printResponse(status rdm.Status, resp *rdm.RDMResponse, pid uint16) {
	fmt.Printf("status: %s\n", status)
	if resp == nil {
		return
	}

	fmt.Printf("response_type: 0x%02x\n", resp.ResponseType)
	fmt.Printf("message_count: %d\n", resp.MessageCount)

	if resp.ResponseType == rdm.ResponseTypeNackReason {
		reason, ok := rdm.ExtractUint16(resp.ParamData)
		if ok {
			fmt.Printf("nack_reason: %s (0x%04x)\n", rdm.NackReason(reason), reason)
		}
		return
	}

	fmt.Printf("pid: 0x%04x\n", pid)
	fmt.Printf("data: %s\n", hex.EncodeToString(resp.ParamData))
}
