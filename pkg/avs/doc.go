/*
Package avs provides a reversible, passphrase-keyed screen for short text messages, producing tokens that are safe to copy and paste.

Note that this is NOT encryption in any meaningful sense.
The arithmetic is simple, there is no authentication, and the key can be recovered from a known plaintext.
It's useful for keeping casual observers from reading a message, and that's all.

# How it works:

A numeric key is derived from the passphrase by taking every character's code point modulo 256.
That key is applied to the payload for the configured number of rounds, adding each key byte to a payload byte (mod 256), cycling through the key like a ring buffer.
After every round the key evolves, with each key byte v becoming (v*7 + 3) mod 256.
The resulting bytes are encoded with standard, padded base64.

Optionally, a PBR (Polyalphabetic Block-Reverse) pass runs before the rounds.
The payload is padded with '~' to a multiple of the block size, shifted by the passphrase used as a repeating keyword, and then the bytes within each block are reversed.

Decryption builds the same round key schedule up front and undoes the rounds from last to first, then undoes the PBR pass if it was used.

# Important note:

The same rounds, PBR, and block size parameters must be provided to reverse the process.
A Settings code can be used to carry these alongside a token.

When PBR is enabled, all trailing '~' characters are stripped from the decrypted payload, not only the padding that was added.
A message that itself ends with '~' will lose those characters.
This is kept to remain compatible with tokens produced by other implementations of the scheme.
*/
package avs
