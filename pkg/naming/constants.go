// Copyright (C) 2025 ScyllaDB

package naming

const (
	EnvVarPrefix = "CQL_DECODER_"
)
