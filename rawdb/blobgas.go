// Copyright 2021 The go-ethereum Authors
// (original work)
// Copyright 2024 The Erigon Authors
// (modifications)
// This file is part of Erigon.
//
// Erigon is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Erigon is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Erigon. If not, see <http://www.gnu.org/licenses/>.

package rawdb

import (
	"fmt"

	"github.com/holiman/uint256"
)

// EIP-4844 constants this gateway needs to recompute blob gas price from a
// decoded header; adapted from the teacher's consensus/misc/eip4844.go,
// which pulled these from erigon-lib/chain.Config and erigon-lib/common/fixedgas
// (not present in this module's dependency slice).
const (
	BlobGasPerBlob             = 131072
	TargetBlobGasPerBlock      = 3 * BlobGasPerBlob
	MinBlobGasPrice            = 1
	BlobGasPriceUpdateFraction = 3338477
)

// CalcExcessBlobGas implements calc_excess_blob_gas from EIP-4844.
func CalcExcessBlobGas(parent *Header) uint64 {
	var excessBlobGas, blobGasUsed uint64
	if parent.ExcessBlobGas != nil {
		excessBlobGas = *parent.ExcessBlobGas
	}
	if parent.BlobGasUsed != nil {
		blobGasUsed = *parent.BlobGasUsed
	}
	if excessBlobGas+blobGasUsed < TargetBlobGasPerBlock {
		return 0
	}
	return excessBlobGas + blobGasUsed - TargetBlobGasPerBlock
}

// FakeExponential approximates factor * e ** (num / denom) using a Taylor
// expansion, as described in the EIP-4844 spec.
func FakeExponential(factor, denom *uint256.Int, excessBlobGas uint64) (*uint256.Int, error) {
	numerator := uint256.NewInt(excessBlobGas)
	output := uint256.NewInt(0)
	numeratorAccum := new(uint256.Int)
	_, overflow := numeratorAccum.MulOverflow(factor, denom)
	if overflow {
		return nil, fmt.Errorf("rawdb: FakeExponential overflow in MulOverflow(factor=%v, denom=%v)", factor, denom)
	}
	divisor := new(uint256.Int)
	for i := 1; numeratorAccum.Sign() > 0; i++ {
		_, overflow = output.AddOverflow(output, numeratorAccum)
		if overflow {
			return nil, fmt.Errorf("rawdb: FakeExponential overflow in AddOverflow(output=%v, numeratorAccum=%v)", output, numeratorAccum)
		}
		_, overflow = divisor.MulOverflow(denom, uint256.NewInt(uint64(i)))
		if overflow {
			return nil, fmt.Errorf("rawdb: FakeExponential overflow in MulOverflow(denom=%v, i=%v)", denom, i)
		}
		_, overflow = numeratorAccum.MulDivOverflow(numeratorAccum, numerator, divisor)
		if overflow {
			return nil, fmt.Errorf("rawdb: FakeExponential overflow in MulDivOverflow(numeratorAccum=%v, numerator=%v, divisor=%v)", numeratorAccum, numerator, divisor)
		}
	}
	return output.Div(output, denom), nil
}

// GetBlobGasPrice returns the per-blob-gas price implied by excessBlobGas.
func GetBlobGasPrice(excessBlobGas uint64) (*uint256.Int, error) {
	return FakeExponential(uint256.NewInt(MinBlobGasPrice), uint256.NewInt(BlobGasPriceUpdateFraction), excessBlobGas)
}

// GetBlobGasUsed returns the blob gas consumed by numBlobs blobs.
func GetBlobGasUsed(numBlobs int) uint64 {
	return uint64(numBlobs) * BlobGasPerBlob
}
