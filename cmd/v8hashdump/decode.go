package main

import (
	"bufio"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mister-utka/Extracting-password-hashes-from-1C-postgres-database/internal/mask"
	"github.com/mister-utka/Extracting-password-hashes-from-1C-postgres-database/pkg/v8hash"
)

var (
	decodeCmd = &cobra.Command{
		Use:   "decode [base64|hex]",
		Short: "Decode a single DATA value",
		Long: "decode unmasks one DATA value given as base64 or hex and prints the recovered " +
			"record and hashes as JSON. Without an argument it reads one value per line from stdin.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runInteractive(cmd.InOrStdin(), cmd.OutOrStdout())
			}
			return runDecode(cmd.OutOrStdout(), args[0])
		},
	}

	encodeCmd = &cobra.Command{
		Use:   "encode <plaintext>",
		Short: "Mask a plaintext record the way 1C stores it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEncode(cmd.OutOrStdout(), args[0])
		},
	}

	maskHex   string
	encodeBOM bool
	encodeHex bool
)

func init() {
	encodeCmd.Flags().StringVar(&maskHex, "mask", "", "hex-encoded mask, 1 to 255 bytes")
	encodeCmd.Flags().BoolVar(&encodeBOM, "bom", false, "prefix the plaintext with a UTF-8 byte order mark")
	encodeCmd.Flags().BoolVar(&encodeHex, "hex", false, "print hex instead of base64 (decode tries base64 first, so hex output may be misread)")
	_ = encodeCmd.MarkFlagRequired("mask")
}

func runInteractive(in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	logrus.Info("decode mode. Paste a base64 or hex DATA value and press Enter (Ctrl+D to exit).")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := runDecode(out, line); err != nil {
			logrus.WithError(err).Error("failed to decode value")
		}
	}
	return scanner.Err()
}

func runDecode(out io.Writer, value string) error {
	result := v8hash.Decode(value)
	if _, err := fmt.Fprintln(out, result.String()); err != nil {
		return err
	}
	return result.Err
}

func runEncode(out io.Writer, plaintext string) error {
	m, err := hex.DecodeString(strings.TrimSpace(maskHex))
	if err != nil {
		return fmt.Errorf("invalid mask hex: %w", err)
	}
	data := []byte(plaintext)
	if encodeBOM {
		data = append([]byte("\xEF\xBB\xBF"), data...)
	}
	blob, err := mask.Encode(data, m)
	if err != nil {
		return err
	}
	if encodeHex {
		_, err = fmt.Fprintln(out, hex.EncodeToString(blob))
		return err
	}
	_, err = fmt.Fprintln(out, base64.StdEncoding.EncodeToString(blob))
	return err
}
