package commands

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/openlighting/rdmresponder/internal/rdm"
)

func listRespondersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-responders",
		Short: "List every responder in the configured fleet",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			uids := make([]string, 0, len(fleet))
			for uid := range fleet {
				uids = append(uids, uid)
			}
			sort.Strings(uids)

			kindByUID := make(map[string]string, len(cfg.Responders))
			for _, rc := range cfg.Responders {
				kindByUID[rc.UID] = rc.Kind
			}

			rows := make([][]string, 0, len(uids))
			for _, uid := range uids {
				rows = append(rows, []string{uid, kindByUID[uid]})
			}

			printTable(os.Stdout, []string{"UID", "KIND"}, rows)
			return nil
		},
	}
}

func listPIDsCmd() *cobra.Command {
	var uidFlag string

	cmd := &cobra.Command{
		Use:   "list-pids",
		Short: "List the PIDs one responder reports via SUPPORTED_PARAMETERS",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			responder, ok := fleet[uidFlag]
			if !ok {
				return fmt.Errorf("no responder configured with UID %q", uidFlag)
			}

			req := &rdm.RDMRequest{
				SourceUID:         controllerUID,
				DestinationUID:    responder.UID(),
				TransactionNumber: nextTransactionNumber(),
				PortID:            1,
				SubDevice:         rdm.RootRDMDevice,
				CommandClass:      rdm.CCGetCommand,
				ParamID:           rdm.PIDSupportedParameters,
			}

			var resp *rdm.RDMResponse
			responder.SendRDMRequest(req, func(_ rdm.Status, r *rdm.RDMResponse) {
				resp = r
			})
			if resp == nil || resp.ResponseType != rdm.ResponseTypeAck {
				return fmt.Errorf("responder did not ACK SUPPORTED_PARAMETERS")
			}

			rows := make([][]string, 0, len(resp.ParamData)/2)
			for i := 0; i+1 < len(resp.ParamData); i += 2 {
				pid := uint16(resp.ParamData[i])<<8 | uint16(resp.ParamData[i+1])
				rows = append(rows, []string{fmt.Sprintf("0x%04x", pid)})
			}

			printTable(os.Stdout, []string{"PID"}, rows)
			return nil
		},
	}

	cmd.Flags().StringVar(&uidFlag, "uid", "", "target responder UID (manufacturer:device hex)")
	_ = cmd.MarkFlagRequired("uid")

	return cmd
}
