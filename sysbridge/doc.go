// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package sysbridge provides raw Linux system calls to scripts.
//
// Script values are converted into machine words according to their kind:
// strings become pointers to NUL terminated copies, numbers are passed as
// they are, arrays become NULL terminated vectors of string pointers (as
// execve(2) wants them), ArrayBuffers and their views are passed by pointer
// without copy, and anything else is passed as zero.
//
// Copies made for a call are owned by the call. They are released once the
// call returned, whether it succeeded or not, and also if converting a later
// argument failed. Buffers passed by pointer are borrowed from the script and
// must stay valid for the duration of the call only.
//
// A call returning the failure sentinel -1 results in an [*Error] carrying
// the errno and the original arguments.
package sysbridge
