/*
Package precision implements high-precision numbers and geometry for
simulations that span astronomical distances.
It provides a fixed-point real number with a configurable layout,
an arbitrary-precision float with the usual transcendental functions,
and vectors, quaternions and rotators built on top of them.

# Features

  - Immutable values, ensuring safe usage across multiple goroutines
  - Fixed-point numbers with a compile-time layout, see [Format]
  - 192-bit floats with trigonometric, exponential and logarithmic functions
  - Generic 3D vectors over either kind of number
  - Quaternions and Euler rotators with spherical interpolation
  - Exact parsing of lengths in common units, from nanometers to parsecs
  - Explicit conversion to and from single-precision types of rendering engines

# Representation

[FixedReal] stores a signed mantissa m and represents m * 2^(-E), where E is
the number of exponent bits of its [Format].
The [Standard] layout has a 102-bit mantissa and a 26-bit exponent, stored
in 128 bits. [Fixed] is an alias for FixedReal[Standard].
Lengths are conventionally stored in centimeters, which makes the quantum of
the Standard layout about 0.149 nanometers and its largest value about
40,000 light-years.

[Float] wraps a [big.Float] with a precision of [FloatPrec] bits.
It is the working type for angles and rotations.

[Vector3], [Quat] and [Rotator] are plain structs of numbers.
Vector3 is generic over the [Real] interface, which both number types
implement.

# Arithmetic

Fixed-point addition and subtraction are exact.
Multiplication and division truncate towards zero, and every result that does
not fit the storage width wraps around in two's complement, like native
integers.
Float operations round to nearest even at FloatPrec bits.
Division of a non-zero Float by zero returns an infinity.

# Conversions

Decimal text, float64 and Float values are converted to fixed point by
rounding half away from zero.
String methods return the shortest decimal text that converts back to the
same value, so text round trips are exact.
Composite values use a text form such as "(X=1,Y=2,Z=3)" or
"(Yaw=90,Pitch=0,Roll=0)".
Every type implements the text, JSON and database/sql interfaces.

# Errors

Constructors and parsers return errors for malformed input and values that
cannot be represented.
Operations whose result is undefined, such as division by zero of a fixed-point
number, the logarithm of a non-positive number or any operation that would
produce NaN, panic.
*/
package precision
