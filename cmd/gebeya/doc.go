// Package cmd/gebeya provides the Gebeya marketplace CLI.
//
// Install once globally:
//
//	go install github.com/ethioagri/gebeya/cmd/gebeya@latest
//
// Then from any directory:
//
//	gebeya signup --name Abel --email abel@example.com --password secret --phone 911223344
//	gebeya login --email abel@example.com --password secret
//	gebeya whoami
//	gebeya product add --name Teff --price 120 --unit kg --category grain --stock 50
//	gebeya product list
//	gebeya market                 # everything in stock, across farmers
//	gebeya analyze leaf.jpg       # crop disease analysis
//	gebeya health                 # analyzer health check
//
// Session and product state live in the configured kv store (KV_DRIVER:
// database, redis or memory), so commands compose across invocations.
package main
