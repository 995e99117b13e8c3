// Package pb holds the generated gRPC contracts of the alertness service and
// of the remote face-mesh detector. Sources live in proto/ at the module root.
package pb

//go:generate protoc -I ../../proto --go_out=../.. --go_opt=module=ALERTNESS/go-backend --go-grpc_out=../.. --go-grpc_opt=module=ALERTNESS/go-backend landmarks/v1/facemesh.proto alertness/v1/alertness.proto
