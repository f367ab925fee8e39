package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"

	"github.com/nodecore/powchain/foundation/blockchain/transaction"
)

var (
	sendURL     string
	keyPath     string
	nonce       uint64
	to          string
	value       uint64
	data        []byte
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Sign and submit a transaction to a node",
	Run:   sendRun,
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().StringVarP(&sendURL, "url", "w", "http://localhost:8080", "URL of the node.")
	sendCmd.Flags().StringVarP(&keyPath, "key", "k", "", "Path to the sender's ECDSA private key file.")
	sendCmd.Flags().Uint64VarP(&nonce, "nonce", "n", 0, "Transaction nonce.")
	sendCmd.Flags().StringVarP(&to, "to", "t", "", "Recipient address.")
	sendCmd.Flags().Uint64VarP(&value, "value", "v", 0, "Amount to send.")
	sendCmd.Flags().BytesHexVarP(&data, "data", "d", nil, "Data payload.")
	sendCmd.MarkFlagRequired("key")
	sendCmd.MarkFlagRequired("to")
}

func sendRun(cmd *cobra.Command, args []string) {
	privateKey, err := crypto.LoadECDSA(keyPath)
	if err != nil {
		log.Fatal(err)
	}

	from := transaction.AddressFromKey(privateKey)

	t, err := transaction.New(from, to, value, nonce, data, privateKey)
	if err != nil {
		log.Fatal(err)
	}

	body, err := json.Marshal(t)
	if err != nil {
		log.Fatal(err)
	}

	resp, err := http.Post(fmt.Sprintf("%s/v1/tx/submit", sendURL), "application/json", bytes.NewBuffer(body))
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		msg, _ := io.ReadAll(resp.Body)
		log.Fatalf("submit %s: %s: %s", t.Hash(), resp.Status, msg)
	}

	fmt.Printf("submitted %s: %s\n", t.Hash(), resp.Status)
}
