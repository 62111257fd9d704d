// Package resolver turns a generation outcome into a playable word.
//
// Resolution is total: a Failure outcome, an envelope that is not JSON, a
// response field with no usable object, or an object with bad fields all end
// in a uniform-random pick from the static corpus. Successful parsing tries,
// in order:
//
//  1. the envelope's response field as an already-decoded object;
//  2. the response text parsed directly, after trimming whitespace and
//     markdown code fences;
//  3. brace-balanced substrings of the text, in order of appearance, up to
//     MaxCandidates of them.
package resolver
