package blockchain

import "fmt"

// ExplorerAddressURL returns the Solana explorer URL for an account address
func ExplorerAddressURL(cluster, address string) string {
	return explorerURL(cluster, "address", address)
}

// ExplorerTxURL returns the Solana explorer URL for a transaction signature
func ExplorerTxURL(cluster, signature string) string {
	return explorerURL(cluster, "tx", signature)
}

func explorerURL(cluster, kind, id string) string {
	url := fmt.Sprintf("https://explorer.solana.com/%s/%s", kind, id)
	if cluster != "" && cluster != "mainnet-beta" {
		url += "?cluster=" + cluster
	}
	return url
}
